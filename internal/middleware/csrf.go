package middleware

import (
	"crypto/subtle"
	"net/http"

	"backend/internal/models"

	"github.com/gin-gonic/gin"
)

var unsafeMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// RequireCSRF enforces the double-submit pattern on state-changing
// requests: the script-readable csrfToken cookie must equal the
// X-CSRF-Token header. Missing and mismatched values get distinct codes so
// the client can re-fetch and retry exactly once.
func RequireCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !unsafeMethods[c.Request.Method] {
			c.Next()
			return
		}

		cookie, err := c.Cookie(models.CookieCSRFToken)
		header := c.GetHeader(models.HeaderCSRFToken)

		if err != nil || cookie == "" || header == "" {
			abortWithCode(c, http.StatusForbidden, models.CodeCSRFMissing)
			return
		}

		if subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
			abortWithCode(c, http.StatusForbidden, models.CodeCSRFMismatch)
			return
		}

		c.Next()
	}
}
