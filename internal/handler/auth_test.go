package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backend/internal/config"
	"backend/internal/models"
	"backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuthService struct {
	loginResult   *service.LoginResult
	loginErr      error
	refreshResult *service.LoginResult
	refreshErr    error
	logoutCalled  bool
	logoutToken   string
}

func (f *fakeAuthService) Login(ctx context.Context, username, password, ua, ip string) (*service.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResult, nil
}

func (f *fakeAuthService) Refresh(ctx context.Context, raw string) (*service.LoginResult, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.refreshResult, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, raw string) error {
	f.logoutCalled = true
	f.logoutToken = raw
	return nil
}

func handlerTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.AccessTTLSeconds = 900
	cfg.Auth.SessionTTLSeconds = 300
	cfg.Auth.RefreshTTLSeconds = 86400
	cfg.Auth.CSRFTTLSeconds = 7200
	return cfg
}

func authTestRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(svc, handlerTestConfig(), zap.NewNop())
	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.Refresh)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/csrf", h.CSRF)
	return r
}

func cookieByName(res *http.Response, name string) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLogin_SetsCookies(t *testing.T) {
	svc := &fakeAuthService{loginResult: &service.LoginResult{
		User:         models.SafeUser{ID: 7, Username: "budi", Role: models.RoleUser},
		AccessToken:  "access-jwt",
		RefreshToken: "sess-1.secret",
		ExpiresIn:    900,
	}}
	r := authTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"budi","password":"rahasia123"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	res := w.Result()

	access := cookieByName(res, models.CookieAccessToken)
	require.NotNil(t, access)
	assert.Equal(t, "access-jwt", access.Value)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, "/", access.Path)

	refresh := cookieByName(res, models.CookieRefreshToken)
	require.NotNil(t, refresh)
	assert.Equal(t, "sess-1.secret", refresh.Value)
	assert.True(t, refresh.HttpOnly)
	assert.Equal(t, "/auth", refresh.Path)

	csrf := cookieByName(res, models.CookieCSRFToken)
	require.NotNil(t, csrf)
	assert.False(t, csrf.HttpOnly)
	assert.NotEmpty(t, csrf.Value)

	assert.Contains(t, w.Body.String(), `"username":"budi"`)
	assert.Contains(t, w.Body.String(), csrf.Value)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestLogin_DoesNotRotateExistingCSRF(t *testing.T) {
	svc := &fakeAuthService{loginResult: &service.LoginResult{
		User:         models.SafeUser{ID: 7, Username: "budi", Role: models.RoleUser},
		AccessToken:  "access-jwt",
		RefreshToken: "sess-1.secret",
	}}
	r := authTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"budi","password":"rahasia123"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: models.CookieCSRFToken, Value: "existing-csrf"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "existing-csrf")
	// No replacement cookie was issued.
	assert.Nil(t, cookieByName(w.Result(), models.CookieCSRFToken))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := &fakeAuthService{loginErr: service.ErrInvalidCredentials}
	r := authTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"budi","password":"salah"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestRefresh_FailureClearsCookies(t *testing.T) {
	svc := &fakeAuthService{refreshErr: service.ErrRefreshInvalid}
	r := authTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: models.CookieRefreshToken, Value: "sess-1.stale"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), models.CodeRefreshInvalid)

	for _, name := range []string{models.CookieAccessToken, models.CookieRefreshToken, models.CookieCSRFToken} {
		c := cookieByName(w.Result(), name)
		require.NotNil(t, c, "cookie %s should be cleared", name)
		assert.Empty(t, c.Value)
		assert.Negative(t, c.MaxAge)
	}
}

func TestRefresh_MissingCookie(t *testing.T) {
	svc := &fakeAuthService{}
	r := authTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), models.CodeRefreshInvalid)
}

func TestRefresh_Success(t *testing.T) {
	svc := &fakeAuthService{refreshResult: &service.LoginResult{
		User:         models.SafeUser{ID: 7, Username: "budi", Role: models.RoleUser},
		AccessToken:  "new-access",
		RefreshToken: "sess-1.newsecret",
		ExpiresIn:    900,
	}}
	r := authTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: models.CookieRefreshToken, Value: "sess-1.oldsecret"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	res := w.Result()
	assert.Equal(t, "new-access", cookieByName(res, models.CookieAccessToken).Value)
	assert.Equal(t, "sess-1.newsecret", cookieByName(res, models.CookieRefreshToken).Value)
}

func TestLogout_AlwaysClearsCookies(t *testing.T) {
	svc := &fakeAuthService{}
	r := authTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: models.CookieRefreshToken, Value: "sess-1.secret"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.logoutCalled)
	assert.Equal(t, "sess-1.secret", svc.logoutToken)

	for _, name := range []string{models.CookieAccessToken, models.CookieRefreshToken, models.CookieCSRFToken} {
		c := cookieByName(w.Result(), name)
		require.NotNil(t, c)
		assert.Empty(t, c.Value)
	}

	// Without a refresh cookie logout is a no-op server-side but still 200.
	svc2 := &fakeAuthService{}
	r2 := authTestRouter(svc2)
	req = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w = httptest.NewRecorder()
	r2.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, svc2.logoutCalled)
}

func TestCSRF_Endpoint(t *testing.T) {
	svc := &fakeAuthService{}
	r := authTestRouter(svc)

	// No auth signal at all: rejected.
	req := httptest.NewRequest(http.MethodGet, "/auth/csrf", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// With an access cookie: a token is minted.
	req = httptest.NewRequest(http.MethodGet, "/auth/csrf", nil)
	req.AddCookie(&http.Cookie{Name: models.CookieAccessToken, Value: "some-jwt"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	issued := cookieByName(w.Result(), models.CookieCSRFToken)
	require.NotNil(t, issued)
	assert.Contains(t, w.Body.String(), issued.Value)

	// An existing token is returned untouched, never rotated.
	req = httptest.NewRequest(http.MethodGet, "/auth/csrf", nil)
	req.AddCookie(&http.Cookie{Name: models.CookieAccessToken, Value: "some-jwt"})
	req.AddCookie(&http.Cookie{Name: models.CookieCSRFToken, Value: "keep-me"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "keep-me")
	assert.Nil(t, cookieByName(w.Result(), models.CookieCSRFToken))
}
