package site

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/wedsite/wedsite/pkg/adminauth"
	"github.com/wedsite/wedsite/pkg/backend"
	"github.com/wedsite/wedsite/pkg/webapi/apimiddleware"
)

func newTestEcho(t *testing.T) *echo.Echo {
	r, err := NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = r
	return e
}

func newTestClient(t *testing.T, handler http.Handler) *backend.Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return backend.NewClient(backend.Options{BaseURL: srv.URL + "/api", Timeout: 5 * time.Second})
}

func tokenExpiringIn(t *testing.T, d time.Duration) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(d).Unix()}).
		SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

// request runs handler directly, with no session guard.
func request(t *testing.T, e *echo.Echo, handler echo.HandlerFunc, method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	return rec
}

func contextWithParam(e *echo.Echo, target, name, value string) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)
	c.SetParamNames(name)
	c.SetParamValues(value)
	return c, rec
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}

	return nil
}

func adminSessionChain(handler echo.HandlerFunc) echo.HandlerFunc {
	return apimiddleware.AdminSession(apimiddleware.AdminSessionConfig{})(handler)
}

// adminRequest runs handler behind the admin session guard the way the
// router does, with the admin_token cookie set to token.
func adminRequest(t *testing.T, e *echo.Echo, handler echo.HandlerFunc, method, target string, form url.Values, token string, params map[string]string) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}

	if token != "" {
		req.AddCookie(&http.Cookie{Name: adminauth.CookieName, Value: token})
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) > 0 {
		var names, values []string
		for name, value := range params {
			names = append(names, name)
			values = append(values, value)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	err := adminSessionChain(handler)(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}

	return rec
}

// memoryBackend is an in-memory stand-in for the backend API.
type memoryBackend struct {
	mu       sync.Mutex
	token    string
	groups   []map[string]any
	nextID   int
	lastAuth string
	lastPath string
	uploaded string
}

func (m *memoryBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastAuth = r.Header.Get("Authorization")
	m.lastPath = r.URL.EscapedPath()
	w.Header().Set("Content-Type", "application/json")

	reply := func(status int, v any) {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	path := strings.TrimPrefix(r.URL.Path, "/api")

	if path == "/auth/login" {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["username"] == "admin" && creds["password"] == "secret" {
			reply(http.StatusOK, map[string]string{"token": m.token})
			return
		}
		reply(http.StatusUnauthorized, map[string]string{"message": "Invalid username or password"})
		return
	}

	if m.lastAuth != "Bearer "+m.token {
		reply(http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return
	}

	switch {
	case r.Method == http.MethodGet && path == "/guest-groups":
		reply(http.StatusOK, map[string]any{"groups": m.groups})
	case r.Method == http.MethodPost && path == "/guest-groups":
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		m.nextID++
		g := map[string]any{"id": m.nextID, "name": req["name"]}
		m.groups = append(m.groups, g)
		reply(http.StatusCreated, g)
	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/guest-groups/"):
		id := strings.TrimPrefix(path, "/guest-groups/")
		for i, g := range m.groups {
			if jsonString(g["id"]) == id {
				m.groups = append(m.groups[:i], m.groups[i+1:]...)
				reply(http.StatusOK, map[string]string{"message": "deleted"})
				return
			}
		}
		reply(http.StatusNotFound, map[string]string{"message": "Group not found"})
	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/guests/"):
		reply(http.StatusOK, map[string]string{"message": "deleted"})
	case r.Method == http.MethodGet && path == "/guests":
		reply(http.StatusOK, map[string]any{
			"guests": []map[string]any{{"id": 1, "firstName": "Ana", "lastName": "Levi"}},
			"total":  42,
		})
	case r.Method == http.MethodGet && path == "/invitations":
		reply(http.StatusOK, []map[string]any{{"id": 3, "title": "Save the date", "template": "classic", "isActive": true}})
	case r.Method == http.MethodGet && path == "/invitations/templates":
		reply(http.StatusInternalServerError, map[string]string{"message": "storage offline"})
	case r.Method == http.MethodPost && path == "/invitations/upload":
		m.uploaded = r.Header.Get("Content-Type")
		reply(http.StatusBadRequest, map[string]string{"message": "Only images are allowed"})
	default:
		reply(http.StatusNotFound, map[string]string{"message": "Not found"})
	}
}

func jsonString(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
