package dto

import "github.com/minimarketpos/pos_backend/internal/core/domain"

// CreateUserRequest defines the payload for creating an operator account.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=ADMIN CASHIER"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Username: u.Username,
		Name:     u.Name,
		Role:     string(u.Role),
	}
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = ToUserResponse(&user)
	}
	return ListUsersResponse{Users: userResponses}
}
