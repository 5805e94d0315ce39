package domain

import "time"

// UserRole controls which operations an operator may perform.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleCashier UserRole = "CASHIER"
)

// IsValid reports whether the role is one of the known roles.
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleCashier
}

// User represents an operator of the store in the domain.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"-"` // bcrypt hash; never serialized
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Used for soft delete
}
