package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/minimarketpos/pos_backend/internal/apperrors"
	"github.com/minimarketpos/pos_backend/internal/core/domain"
	portssvc "github.com/minimarketpos/pos_backend/internal/core/ports/services"
	"github.com/minimarketpos/pos_backend/internal/middleware"
	"github.com/minimarketpos/pos_backend/internal/platform/config"
	"github.com/minimarketpos/pos_backend/internal/utils"
)

// tokenService issues signed access tokens for authenticated operators.
type tokenService struct {
	jwtSecret      string
	expiryDuration time.Duration
	issuer         string
}

// NewTokenService creates a new TokenService from application configuration.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{
		jwtSecret:      cfg.JWTSecret,
		expiryDuration: cfg.JWTExpiryDuration,
		issuer:         cfg.JWTIssuer,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new signed access token carrying the user's
// role as a claim.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expiresAt := time.Now().Add(s.expiryDuration)
	token, err := utils.GenerateJWT(user.UserID, string(user.Role), s.jwtSecret, s.expiryDuration, s.issuer)
	if err != nil {
		logger.Error("Failed to sign access token", slog.String("user_id", user.UserID), slog.String("error", err.Error()))
		return "", time.Time{}, apperrors.NewAppError(500, "failed to sign access token", err)
	}

	return token, expiresAt, nil
}
