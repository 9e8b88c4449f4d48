package models

// API error codes returned in JSON bodies. The client distinguishes them to
// decide whether a silent refresh or a CSRF re-fetch can recover.
const (
	CodeTokenMissing   = "TOKEN_MISSING"
	CodeTokenExpired   = "TOKEN_EXPIRED"
	CodeTokenInvalid   = "TOKEN_INVALID"
	CodeCSRFMissing    = "CSRF_MISSING"
	CodeCSRFMismatch   = "CSRF_MISMATCH"
	CodeRefreshInvalid = "REFRESH_INVALID"
	CodeRefreshExpired = "REFRESH_EXPIRED"
	CodeSessionExpired = "SESSION_EXPIRED"
	CodeForbidden      = "FORBIDDEN"
	CodeRateLimited    = "RATE_LIMITED"
)

// Cookie and header names shared between handlers and middleware.
const (
	CookieAccessToken  = "accessToken"
	CookieRefreshToken = "refreshToken"
	CookieCSRFToken    = "csrfToken"
	HeaderCSRFToken    = "X-CSRF-Token"
)
