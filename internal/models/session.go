package models

import "time"

// Session is one authenticated device/browser. The stored hash is an
// HMAC-SHA256 digest of the refresh secret, never the secret itself.
type Session struct {
	ID               string    `db:"id"`
	UserID           int64     `db:"user_id"`
	RefreshTokenHash string    `db:"refresh_token_hash"`
	SessionExpiresAt time.Time `db:"session_expires_at"`
	RefreshExpiresAt time.Time `db:"refresh_expires_at"`
	Revoked          bool      `db:"revoked"`
	UserAgent        string    `db:"user_agent"`
	IPAddress        string    `db:"ip_address"`
	LastActivityAt   time.Time `db:"last_activity_at"`
	CreatedAt        time.Time `db:"created_at"`
}

// Usable reports whether the session may still back credentials: not
// revoked and neither expiry has passed.
func (s *Session) Usable(now time.Time) bool {
	return !s.Revoked && now.Before(s.SessionExpiresAt) && now.Before(s.RefreshExpiresAt)
}
