package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/minimarketpos/pos_backend/internal/core/domain"
)

// contextKey is a private type for context keys defined in this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	userRoleKey  = contextKey("userRole")
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard
// context. It returns the default logger if none is found.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetUserRoleFromContext retrieves the authenticated user's role from the Gin context.
func GetUserRoleFromContext(c *gin.Context) (domain.UserRole, bool) {
	role, ok := c.Request.Context().Value(userRoleKey).(domain.UserRole)
	if !ok || !role.IsValid() {
		return "", false
	}
	return role, true
}
