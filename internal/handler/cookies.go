package handler

import (
	"net/http"

	"backend/internal/config"
	"backend/internal/models"

	"github.com/gin-gonic/gin"
)

// cookieWriter centralizes the cookie policy: access and refresh tokens are
// HttpOnly, the CSRF token is readable by script, and the refresh cookie is
// scoped to the auth endpoint group so it never rides along on API calls.
type cookieWriter struct {
	cfg *config.Config
}

func (w cookieWriter) sameSite() http.SameSite {
	if w.cfg.Auth.SecureCookies {
		return http.SameSiteStrictMode
	}
	return http.SameSiteLaxMode
}

func (w cookieWriter) set(c *gin.Context, name, value, path string, maxAge int, httpOnly bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		MaxAge:   maxAge,
		HttpOnly: httpOnly,
		Secure:   w.cfg.Auth.SecureCookies,
		SameSite: w.sameSite(),
	})
}

func (w cookieWriter) setAccess(c *gin.Context, accessToken string) {
	w.set(c, models.CookieAccessToken, accessToken, "/", int(w.cfg.AccessTTL().Seconds()), true)
}

func (w cookieWriter) setRefresh(c *gin.Context, refreshToken string) {
	w.set(c, models.CookieRefreshToken, refreshToken, "/auth", int(w.cfg.RefreshTTL().Seconds()), true)
}

func (w cookieWriter) setCSRF(c *gin.Context, csrfToken string) {
	w.set(c, models.CookieCSRFToken, csrfToken, "/", int(w.cfg.CSRFTTL().Seconds()), false)
}

// clearAll wipes every auth cookie. Used on logout and on any refresh
// failure so the client never sits in a half-authenticated state.
func (w cookieWriter) clearAll(c *gin.Context) {
	w.set(c, models.CookieAccessToken, "", "/", -1, true)
	w.set(c, models.CookieRefreshToken, "", "/auth", -1, true)
	w.set(c, models.CookieCSRFToken, "", "/", -1, false)
}
