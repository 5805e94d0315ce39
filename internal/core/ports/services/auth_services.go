package services

import (
	"context"
	"time"

	"github.com/minimarketpos/pos_backend/internal/core/domain"
)

// TokenSvcFacade defines JWT access token operations.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a new signed access token for the given user,
	// carrying the user's role as a claim. Returns the token and its expiry.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
