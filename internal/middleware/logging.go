package middleware

import (
	"time"

	"backend/internal/models"
	"backend/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs every request with a best-effort user identity. The
// token is decoded without verification here; that is fine for log fields
// and must never be treated as an authentication decision.
func RequestLogger(signer *token.Signer, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		username := "-"
		if raw, err := c.Cookie(models.CookieAccessToken); err == nil && raw != "" {
			if claims, ok := signer.ParseUnverified(raw); ok {
				username = claims.Username
			}
		}

		c.Next()

		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"ip":       c.ClientIP(),
			"user":     username,
		}).Info("request")
	}
}
