package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/jonathan/vettedge/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postLogin(t *testing.T, env *testEnv, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"email": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return env.do(t, req)
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == config.SessionCookie {
			return c
		}
	}
	return nil
}

func TestLogin_DemoMode(t *testing.T) {
	env := newTestServer(t)

	page := env.do(t, httptest.NewRequest(http.MethodGet, "/login", nil))
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Demo mode")

	rec := postLogin(t, env, "anyone@example.com", "whatever")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	claims, err := env.server.jwtService.ValidateToken(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "anyone@example.com", claims.Email)

	// the session opens the dashboard, which shows the welcome flash
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookie {
			req.AddCookie(c)
		}
	}
	dash := env.do(t, req)
	require.Equal(t, http.StatusOK, dash.Code)
	assert.Contains(t, dash.Body.String(), "Welcome back to VettEdge")
	assert.Contains(t, dash.Body.String(), "anyone@example.com")
}

func TestLogin_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     int
	}{
		{"empty email", "", "secret", http.StatusBadRequest},
		{"empty password", "hr@company.com", "", http.StatusBadRequest},
		{"malformed email", "not-an-email", "secret", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestServer(t)
			rec := postLogin(t, env, tt.email, tt.password)
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), "Login failed")
			assert.Contains(t, rec.Body.String(), "Please check your credentials and try again")
			assert.Nil(t, sessionCookie(rec))
		})
	}
}

func TestLogin_OperatorAccount(t *testing.T) {
	pw := &config.PasswordConfig{BcryptCost: 10, Pepper: "pepper"}
	hash, err := pw.HashPassword("correct horse")
	require.NoError(t, err)

	env := newTestServer(t, func(c *Config) {
		c.Password = pw
		c.Auth = config.AuthConfig{Email: "hr@company.com", PasswordHash: hash}
	})

	page := env.do(t, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.NotContains(t, page.Body.String(), "Demo mode")

	rec := postLogin(t, env, "hr@company.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="hr@company.com"`)

	rec = postLogin(t, env, "someone@else.com", "correct horse")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postLogin(t, env, "HR@company.com", "correct horse")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.NotNil(t, sessionCookie(rec))
}

func TestLoginPage_RedirectsWithSession(t *testing.T) {
	env := newTestServer(t)
	rec := env.do(t, env.authed(t, http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestLogout(t *testing.T) {
	env := newTestServer(t)
	rec := env.do(t, env.authed(t, http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestPages_InvalidSession(t *testing.T) {
	env := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: config.SessionCookie, Value: "forged"})

	rec := env.do(t, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
