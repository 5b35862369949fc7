package apimiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wedsite/wedsite/pkg/adminauth"
	"github.com/wedsite/wedsite/pkg/backend"
)

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func tokenExpiringIn(t *testing.T, d time.Duration) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": now.Add(d).Unix()}).
		SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func newContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// run invokes mw around a handler that records the RequestContext it saw.
func run(t *testing.T, mw echo.MiddlewareFunc, c echo.Context) (backend.RequestContext, bool) {
	var (
		seen   backend.RequestContext
		called bool
	)

	err := mw(func(c echo.Context) error {
		called = true
		seen = RequestContextFrom(c)
		return nil
	})(c)
	if err != nil {
		c.Echo().HTTPErrorHandler(err, c)
	}

	return seen, called
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		cookie         string
		cookieFallback bool
		expected       string
	}{
		{name: "Header", header: "Bearer abc", expected: "abc"},
		{name: "Lowercase scheme", header: "bearer abc", expected: "abc"},
		{name: "Not bearer", header: "Basic abc", expected: ""},
		{name: "None", expected: ""},
		{name: "Cookie ignored by default", cookie: "fromcookie", expected: ""},
		{name: "Cookie fallback", cookie: "fromcookie", cookieFallback: true, expected: "fromcookie"},
		{name: "Header wins over cookie", header: "Bearer abc", cookie: "fromcookie", cookieFallback: true, expected: "abc"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, _ := newContext(http.MethodGet, "/api/guests")
			c.Request().Header.Set(echo.HeaderXRequestID, "req-1")
			if test.header != "" {
				c.Request().Header.Set(echo.HeaderAuthorization, test.header)
			}

			if test.cookie != "" {
				c.Request().AddCookie(&http.Cookie{Name: adminauth.CookieName, Value: test.cookie})
			}

			rc, called := run(t, BearerToken(BearerConfig{CookieFallback: test.cookieFallback}), c)
			require.True(t, called)
			assert.Equal(t, test.expected, rc.BearerToken)
			assert.Equal(t, "req-1", rc.RequestID)
		})
	}
}

func TestAdminSession(t *testing.T) {
	mw := AdminSession(AdminSessionConfig{Now: func() time.Time { return now }})

	t.Run("No cookie redirects with from", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/admin/guests?page=2")
		_, called := run(t, mw, c)

		assert.False(t, called)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin/login?from=%2Fadmin%2Fguests%3Fpage%3D2", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("Expired token is cleared", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/admin")
		c.Request().AddCookie(&http.Cookie{Name: adminauth.CookieName, Value: tokenExpiringIn(t, -time.Minute)})
		_, called := run(t, mw, c)

		assert.False(t, called)
		assert.Equal(t, "/admin/login?expired=true", rec.Header().Get(echo.HeaderLocation))
		assert.Contains(t, rec.Header().Get(echo.HeaderSetCookie), adminauth.CookieName+"=;")
	})

	t.Run("Undecodable token", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/admin/groups")
		c.Request().AddCookie(&http.Cookie{Name: adminauth.CookieName, Value: "garbage"})
		_, called := run(t, mw, c)

		assert.False(t, called)
		assert.Equal(t, "/admin/login?from=%2Fadmin%2Fgroups&invalid=true", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("Valid token passes with info", func(t *testing.T) {
		token := tokenExpiringIn(t, 2*time.Minute)
		c, _ := newContext(http.MethodGet, "/admin")
		c.Request().AddCookie(&http.Cookie{Name: adminauth.CookieName, Value: token})
		rc, called := run(t, mw, c)

		require.True(t, called)
		assert.Equal(t, token, rc.BearerToken)
		info := TokenInfoFrom(c)
		assert.Equal(t, adminauth.TokenValid, info.State)
		assert.True(t, info.ExpiresSoon())
	})

	t.Run("Skipper", func(t *testing.T) {
		skipping := AdminSession(AdminSessionConfig{Skipper: func(echo.Context) bool { return true }})
		c, _ := newContext(http.MethodGet, "/admin/login")
		_, called := run(t, skipping, c)
		assert.True(t, called)
	})
}

func TestRequireToken(t *testing.T) {
	issued, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}).
		SignedString([]byte("backend-secret"))
	require.NoError(t, err)

	selfSigned, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}).
		SignedString([]byte("some-other-key"))
	require.NoError(t, err)

	var verified int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/guests/stats" || r.Header.Get("Authorization") != "Bearer "+issued {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Unauthorized"}`))
			return
		}
		verified++
		_, _ = w.Write([]byte(`{"total":0}`))
	}))
	t.Cleanup(srv.Close)

	client := backend.NewClient(backend.Options{BaseURL: srv.URL, Timeout: time.Second})
	chain := func(next echo.HandlerFunc) echo.HandlerFunc {
		return BearerToken(BearerConfig{})(RequireToken(client)(next))
	}

	tests := []struct {
		name           string
		token          string
		expectedCalled bool
		expectedStatus int
	}{
		{name: "No token", expectedStatus: http.StatusUnauthorized},
		{name: "Undecodable token", token: "garbage", expectedStatus: http.StatusUnauthorized},
		{name: "Self signed token", token: selfSigned, expectedStatus: http.StatusUnauthorized},
		{name: "Issued token", token: issued, expectedCalled: true, expectedStatus: http.StatusOK},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, rec := newContext(http.MethodPost, "/api/admin/logging")
			if test.token != "" {
				c.Request().Header.Set(echo.HeaderAuthorization, "Bearer "+test.token)
			}

			_, called := run(t, chain, c)
			assert.Equal(t, test.expectedCalled, called)
			assert.Equal(t, test.expectedStatus, rec.Code)
		})
	}

	assert.Equal(t, 1, verified)
}

func TestRequireTokenBackendDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := backend.NewClient(backend.Options{BaseURL: srv.URL, Timeout: time.Second})
	chain := func(next echo.HandlerFunc) echo.HandlerFunc {
		return BearerToken(BearerConfig{})(RequireToken(client)(next))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	c, rec := newContext(http.MethodGet, "/api/admin/logging")
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	_, called := run(t, chain, c)
	assert.False(t, called)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
