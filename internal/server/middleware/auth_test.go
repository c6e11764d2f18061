package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSession string

func (s testSession) GetEmail() string { return string(s) }

type testValidator map[string]string

func (v testValidator) ValidateToken(token string) (Session, error) {
	email, ok := v[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return testSession(email), nil
}

const cookieName = "session"

func protected(t *testing.T, onFail Unauthorized) http.Handler {
	t.Helper()
	validator := testValidator{"good": "recruiter@example.com"}
	return AuthMiddleware(validator, cookieName, onFail)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := GetSession(r)
		require.NoError(t, err)
		_, _ = w.Write([]byte(s.GetEmail()))
	}))
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
	}{
		{name: "bearer token", header: "Bearer good", wantStatus: http.StatusOK},
		{name: "lowercase bearer", header: "bearer good", wantStatus: http.StatusOK},
		{name: "cookie", cookie: "good", wantStatus: http.StatusOK},
		{name: "header wins over cookie", header: "Bearer bad", cookie: "good", wantStatus: http.StatusUnauthorized},
		{name: "missing", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", wantStatus: http.StatusUnauthorized},
		{name: "extra parts", header: "Bearer good extra", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer bad", wantStatus: http.StatusUnauthorized},
		{name: "empty cookie", cookie: "", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: cookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			protected(t, nil).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "recruiter@example.com", rec.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_CustomFailure(t *testing.T) {
	redirect := func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
	rec := httptest.NewRecorder()
	protected(t, redirect).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analysis", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestGetSession(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetSession(req)
	assert.Error(t, err)

	req = req.WithContext(WithSession(req.Context(), testSession("a@b.c")))
	s, err := GetSession(req)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", s.GetEmail())
}
