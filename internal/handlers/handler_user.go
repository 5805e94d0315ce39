package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minimarketpos/pos_backend/internal/apperrors"
	portssvc "github.com/minimarketpos/pos_backend/internal/core/ports/services"
	"github.com/minimarketpos/pos_backend/internal/dto"
	"github.com/minimarketpos/pos_backend/internal/middleware"
)

// userHandler handles HTTP requests related to operator accounts.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(userService portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: userService,
	}
}

// registerUserRoutes sets up the routes for user management. The whole group
// is restricted to administrators.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, adminOnly gin.HandlerFunc) {
	h := newUserHandler(userService)

	users := rg.Group("/users", adminOnly)
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.GET("/:userID", h.getUser)
		users.PUT("/:userID", h.updateUser)
		users.DELETE("/:userID", h.deleteUser)
	}
}

// createUser godoc
// @Summary Create a new operator account
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Username already taken"
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create user in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		}
		return
	}

	logger.Info("User created successfully", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// getUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{userID} [get]
func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error("Failed to get user from service", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list users from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

// updateUser godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{userID} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, req, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update user in service", slog.String("error", err.Error()), slog.String("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Deactivate a user
// @Description Soft-deletes an operator account. Self-deletion is rejected.
// @Tags users
// @Produce json
// @Param userID path string true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Cannot delete own account"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{userID} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID, requestingUserID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to delete user in service", slog.String("error", err.Error()), slog.String("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
