package handler

import (
	"errors"
	"net/http"

	"backend/internal/config"
	"backend/internal/models"
	"backend/internal/service"
	"backend/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler interface {
	Login(c *gin.Context)
	Refresh(c *gin.Context)
	Logout(c *gin.Context)
	CSRF(c *gin.Context)
}

type authHandler struct {
	authService service.AuthService
	cookies     cookieWriter
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, cfg *config.Config, logger *zap.Logger) AuthHandler {
	return &authHandler{
		authService: authService,
		cookies:     cookieWriter{cfg: cfg},
		logger:      logger,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for the full cookie set. The CSRF token is
// only minted when the browser does not already hold one, so a login in a
// second tab does not invalidate the first.
func (h *authHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid username or password"})
			return
		}
		h.logger.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to login"})
		return
	}

	csrfToken, err := h.ensureCSRF(c)
	if err != nil {
		h.logger.Error("Failed to generate CSRF token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to login"})
		return
	}

	h.cookies.setAccess(c, result.AccessToken)
	h.cookies.setRefresh(c, result.RefreshToken)

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"user":       result.User,
		"csrfToken":  csrfToken,
		"expires_in": result.ExpiresIn,
	})
}

// Refresh rotates the refresh cookie. Every failure clears all auth
// cookies: the client is forced into a clean unauthenticated state.
func (h *authHandler) Refresh(c *gin.Context) {
	raw, err := c.Cookie(models.CookieRefreshToken)
	if err != nil || raw == "" {
		h.cookies.clearAll(c)
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "code": models.CodeRefreshInvalid})
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), raw)
	if err != nil {
		h.cookies.clearAll(c)
		switch {
		case errors.Is(err, service.ErrRefreshExpired):
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "code": models.CodeRefreshExpired})
		case errors.Is(err, service.ErrSessionExpired):
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "code": models.CodeSessionExpired})
		case errors.Is(err, service.ErrRefreshInvalid):
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "code": models.CodeRefreshInvalid})
		default:
			h.logger.Error("Refresh failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "token refresh failed"})
		}
		return
	}

	csrfToken, err := h.ensureCSRF(c)
	if err != nil {
		h.cookies.clearAll(c)
		h.logger.Error("Failed to generate CSRF token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "token refresh failed"})
		return
	}

	h.cookies.setAccess(c, result.AccessToken)
	h.cookies.setRefresh(c, result.RefreshToken)

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"user":       result.User,
		"csrfToken":  csrfToken,
		"expires_in": result.ExpiresIn,
	})
}

// Logout always clears cookies, even when server-side revocation fails.
func (h *authHandler) Logout(c *gin.Context) {
	raw, _ := c.Cookie(models.CookieRefreshToken)

	h.cookies.clearAll(c)

	if raw != "" {
		if err := h.authService.Logout(c.Request.Context(), raw); err != nil {
			h.logger.Error("Logout revocation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "logout failed"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "logged out"})
}

// CSRF returns the existing CSRF token or mints one if absent. It never
// rotates a valid token, so concurrent tabs stay consistent. Some prior
// auth signal is required; this is not an open token faucet.
func (h *authHandler) CSRF(c *gin.Context) {
	_, _, hasAccess := currentUser(c)
	accessCookie, _ := c.Cookie(models.CookieAccessToken)
	refreshCookie, _ := c.Cookie(models.CookieRefreshToken)
	if !hasAccess && accessCookie == "" && refreshCookie == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "unauthorized"})
		return
	}

	csrfToken, err := h.ensureCSRF(c)
	if err != nil {
		h.logger.Error("Failed to generate CSRF token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to generate CSRF token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"csrfToken": csrfToken})
}

// ensureCSRF returns the current CSRF cookie value, issuing a fresh one
// only when the request carries none.
func (h *authHandler) ensureCSRF(c *gin.Context) (string, error) {
	if existing, err := c.Cookie(models.CookieCSRFToken); err == nil && existing != "" {
		return existing, nil
	}
	fresh, err := token.NewCSRFToken()
	if err != nil {
		return "", err
	}
	h.cookies.setCSRF(c, fresh)
	return fresh, nil
}
