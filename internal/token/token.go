package token

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

const refreshSecretBytes = 48

// Signer issues and verifies HS256 access tokens and hashes refresh
// secrets. Both secrets come from the environment; see config.
type Signer struct {
	accessSecret      []byte
	refreshHashSecret []byte
	accessTTL         time.Duration
}

func NewSigner(accessSecret, refreshHashSecret []byte, accessTTL time.Duration) *Signer {
	return &Signer{
		accessSecret:      accessSecret,
		refreshHashSecret: refreshHashSecret,
		accessTTL:         accessTTL,
	}
}

// SignAccessToken produces the short-lived access JWT for a user/session
// pair. Validity is purely cryptographic plus expiry; nothing is persisted.
func (s *Signer) SignAccessToken(user *models.User, sessionID string) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		Username:  user.Username,
		Role:      user.Role,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.accessSecret)
}

// ParseAccessToken verifies signature and expiry. Expiry and invalidity are
// reported as distinct errors so callers can answer with distinct codes.
func (s *Signer) ParseAccessToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.accessSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ParseUnverified extracts claims without checking the signature. For
// request logging only, never an authentication decision.
func (s *Signer) ParseUnverified(tokenString string) (*models.Claims, bool) {
	claims := &models.Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, false
	}
	return claims, true
}

// NewRefreshSecret returns a fresh opaque refresh secret.
func NewRefreshSecret() (string, error) {
	b := make([]byte, refreshSecretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashRefreshSecret digests the secret with HMAC-SHA256. A deterministic
// digest (unlike bcrypt) lets rotation run as a single conditional UPDATE
// matching the old hash.
func (s *Signer) HashRefreshSecret(secret string) string {
	mac := hmac.New(sha256.New, s.refreshHashSecret)
	mac.Write([]byte(secret))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyRefreshSecret compares in constant time.
func (s *Signer) VerifyRefreshSecret(secret, storedHash string) bool {
	return hmac.Equal([]byte(s.HashRefreshSecret(secret)), []byte(storedHash))
}

// ComposeRefreshToken builds the externally visible refresh token.
func ComposeRefreshToken(sessionID, secret string) string {
	return sessionID + "." + secret
}

// SplitRefreshToken parses a presented refresh token into session id and
// secret. Returns false for anything malformed.
func SplitRefreshToken(raw string) (sessionID, secret string, ok bool) {
	parts := strings.SplitN(raw, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// NewCSRFToken returns a random value for the double-submit cookie.
func NewCSRFToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
