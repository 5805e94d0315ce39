package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/minimarketpos/pos_backend/internal/apperrors"
	portssvc "github.com/minimarketpos/pos_backend/internal/core/ports/services"
	"github.com/minimarketpos/pos_backend/internal/dto"
	"github.com/minimarketpos/pos_backend/internal/middleware"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// authHandler handles authentication related requests.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *authHandler {
	return &authHandler{
		userService:  us,
		tokenService: ts,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(rg *gin.Engine, us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) {
	h := newAuthHandler(us, ts)

	// Rate limit: 5 login attempts per minute per IP
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(ipLimiter), h.login)
	}
}

// login godoc
// @Summary Operator login
// @Description Authenticates an operator and returns a JWT access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			// Same message for unknown user and wrong password
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
			return
		}
		logger.Error("Failed to authenticate user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to authenticate"})
		return
	}

	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        dto.ToUserResponse(user),
	})
}
