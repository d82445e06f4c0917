package api

import (
	"net/http"

	reqdto "sponsorship-api/internal/handler/dto/request"
	resdto "sponsorship-api/internal/handler/dto/response"
	"sponsorship-api/internal/handler/httperr"
	"sponsorship-api/internal/handler/middleware"
	"sponsorship-api/internal/pkg/config"
	"sponsorship-api/internal/pkg/cookie"
	"sponsorship-api/internal/pkg/errs"
	"sponsorship-api/internal/usecase/commands"
	"sponsorship-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
	userQueries  queries.UserQueries
	jwtConfig    config.JWTConfig
	cookieConfig config.CookieConfig
}

func NewAuthHandler(
	authCommands commands.AuthCommands,
	userQueries queries.UserQueries,
	jwtConfig config.JWTConfig,
	cookieConfig config.CookieConfig,
) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
		userQueries:  userQueries,
		jwtConfig:    jwtConfig,
		cookieConfig: cookieConfig,
	}
}

// @Summary Admin login
// @Description Authenticate an admin user and set token cookies
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Credentials"
// @Success 200 {object} resdto.LoginResponse
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrInvalidCredentials):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
		case errs.Is(err, commands.ErrUserInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Account is deactivated", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	cookie.SetTokenCookies(c, h.cookieConfig,
		result.TokenPair.AccessToken, result.TokenPair.RefreshToken,
		h.jwtConfig.AccessDuration, h.jwtConfig.RefreshDuration)

	c.JSON(http.StatusOK, resdto.LoginResponse{
		UserID:      result.UserID,
		Role:        result.Role.String(),
		AccessToken: result.TokenPair.AccessToken,
	})
}

// @Summary Refresh tokens
// @Description Rotate the token pair using the refresh token cookie
// @Tags auth
// @Produce json
// @Success 204
// @Failure 401 {object} httperr.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken := cookie.GetRefreshToken(c)
	if refreshToken == "" {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing refresh token"), "Refresh token required", nil)
		return
	}

	pair, err := h.authCommands.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		cookie.ClearTokenCookies(c, h.cookieConfig)
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid refresh token", nil)
		return
	}

	cookie.SetTokenCookies(c, h.cookieConfig,
		pair.AccessToken, pair.RefreshToken,
		h.jwtConfig.AccessDuration, h.jwtConfig.RefreshDuration)

	c.Status(http.StatusNoContent)
}

// @Summary Logout
// @Description Clear token cookies
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearTokenCookies(c, h.cookieConfig)
	c.Status(http.StatusNoContent)
}

// @Summary Current admin user
// @Description Return the authenticated admin's profile
// @Tags auth
// @Produce json
// @Success 200 {object} resdto.MeResponse
// @Failure 401 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing user context"), "Authentication required", nil)
		return
	}

	view, err := h.userQueries.GetByID(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.MeResponse{
		ID:        view.ID,
		Email:     view.Email,
		Role:      view.Role,
		IsActive:  view.IsActive,
		LastLogin: view.LastLogin,
	})
}
