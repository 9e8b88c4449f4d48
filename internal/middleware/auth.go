package middleware

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"backend/internal/models"
	"backend/internal/repository"
	"backend/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Gin context keys set by RequireAuth.
const (
	CtxUserID    = "userID"
	CtxUsername  = "username"
	CtxRole      = "role"
	CtxSessionID = "sessionID"
)

func abortWithCode(c *gin.Context, status int, code string) {
	c.AbortWithStatusJSON(status, gin.H{"status": "error", "code": code})
}

// RequireAuth gates protected routes. The access token comes from the
// accessToken cookie, falling back to an Authorization bearer header. The
// session backing the token must still be live: a valid signature over a
// revoked or timed-out session is not enough.
func RequireAuth(signer *token.Signer, sessions repository.SessionRepository, sessionTTL time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := accessTokenFrom(c)
		if tokenString == "" {
			abortWithCode(c, http.StatusUnauthorized, models.CodeTokenMissing)
			return
		}

		claims, err := signer.ParseAccessToken(tokenString)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				abortWithCode(c, http.StatusUnauthorized, models.CodeTokenExpired)
				return
			}
			abortWithCode(c, http.StatusForbidden, models.CodeTokenInvalid)
			return
		}

		session, err := sessions.GetSessionByID(c.Request.Context(), claims.SessionID)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				logger.Error("Session lookup failed", zap.Error(err))
			}
			abortWithCode(c, http.StatusUnauthorized, models.CodeSessionExpired)
			return
		}

		now := time.Now()
		if !session.Usable(now) {
			abortWithCode(c, http.StatusUnauthorized, models.CodeSessionExpired)
			return
		}

		// Sliding window: extend once less than half the TTL remains, so
		// active users are not logged out mid-click.
		if session.SessionExpiresAt.Sub(now) < sessionTTL/2 {
			if err := sessions.ExtendSession(c.Request.Context(), session.ID, now.Add(sessionTTL)); err != nil {
				logger.Warn("Failed to extend session", zap.String("session_id", session.ID), zap.Error(err))
			}
		}

		userID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			abortWithCode(c, http.StatusForbidden, models.CodeTokenInvalid)
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxSessionID, session.ID)

		c.Next()
	}
}

// RequireRole allows only the listed roles past. Must run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		abortWithCode(c, http.StatusForbidden, models.CodeForbidden)
	}
}

func accessTokenFrom(c *gin.Context) string {
	if cookie, err := c.Cookie(models.CookieAccessToken); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
