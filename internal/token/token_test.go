package token

import (
	"testing"
	"time"

	"backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSigner(ttl time.Duration) *Signer {
	return NewSigner([]byte("access-secret"), []byte("refresh-hash-secret"), ttl)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	s := newTestSigner(time.Hour)
	user := &models.User{ID: 42, Username: "budi", Role: models.RoleUser}

	raw, err := s.SignAccessToken(user, "sess-1")
	require.NoError(t, err)

	claims, err := s.ParseAccessToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "budi", claims.Username)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.Equal(t, "sess-1", claims.SessionID)
}

func TestAccessToken_Expired(t *testing.T) {
	s := newTestSigner(-time.Minute)
	user := &models.User{ID: 1, Username: "budi", Role: models.RoleUser}

	raw, err := s.SignAccessToken(user, "sess-1")
	require.NoError(t, err)

	_, err = s.ParseAccessToken(raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	s := newTestSigner(time.Hour)
	user := &models.User{ID: 1, Username: "budi", Role: models.RoleUser}

	raw, err := s.SignAccessToken(user, "sess-1")
	require.NoError(t, err)

	other := NewSigner([]byte("different"), []byte("refresh-hash-secret"), time.Hour)
	_, err = other.ParseAccessToken(raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}

func TestAccessToken_Malformed(t *testing.T) {
	s := newTestSigner(time.Hour)
	_, err := s.ParseAccessToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseUnverified(t *testing.T) {
	s := newTestSigner(time.Hour)
	user := &models.User{ID: 7, Username: "sari", Role: models.RoleAdmin}

	raw, err := s.SignAccessToken(user, "sess-9")
	require.NoError(t, err)

	// A signer with the wrong key can still extract claims for logging.
	other := NewSigner([]byte("wrong"), []byte("x"), time.Hour)
	claims, ok := other.ParseUnverified(raw)
	require.True(t, ok)
	assert.Equal(t, "sari", claims.Username)

	_, ok = other.ParseUnverified("garbage")
	assert.False(t, ok)
}

func TestRefreshSecret_HashAndVerify(t *testing.T) {
	s := newTestSigner(time.Hour)

	secret, err := NewRefreshSecret()
	require.NoError(t, err)
	require.Len(t, secret, 96) // 48 bytes hex encoded

	hash := s.HashRefreshSecret(secret)
	assert.NotEqual(t, secret, hash)
	assert.True(t, s.VerifyRefreshSecret(secret, hash))
	assert.False(t, s.VerifyRefreshSecret("other", hash))

	// Digests are keyed: a different hash secret cannot verify.
	other := NewSigner([]byte("access-secret"), []byte("another-key"), time.Hour)
	assert.False(t, other.VerifyRefreshSecret(secret, hash))
}

func TestRefreshSecret_Unique(t *testing.T) {
	a, err := NewRefreshSecret()
	require.NoError(t, err)
	b, err := NewRefreshSecret()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSplitRefreshToken(t *testing.T) {
	composed := ComposeRefreshToken("sess-1", "secret-value")

	id, secret, ok := SplitRefreshToken(composed)
	require.True(t, ok)
	assert.Equal(t, "sess-1", id)
	assert.Equal(t, "secret-value", secret)

	for _, raw := range []string{"", "nodot", ".leading", "trailing.", "."} {
		_, _, ok := SplitRefreshToken(raw)
		assert.False(t, ok, "expected %q to be rejected", raw)
	}
}

func TestNewCSRFToken(t *testing.T) {
	a, err := NewCSRFToken()
	require.NoError(t, err)
	b, err := NewCSRFToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.NotEmpty(t, a)
}
