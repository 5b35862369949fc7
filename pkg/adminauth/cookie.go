package adminauth

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	CookieName       = "admin_token"
	CookieMaxAge     = 24 * time.Hour
	WarnedCookieName = "token_warned"
	DefaultLanding   = "/admin"
	LoginPath        = "/admin/login"
)

func NewCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// WarnedCookie marks that the expiry warning was shown for the current
// token, so it is shown once.
func WarnedCookie(expiresIn time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     WarnedCookieName,
		Value:    "1",
		Path:     "/admin",
		MaxAge:   max(int(expiresIn.Seconds()), 1),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// SafeRedirect returns from when it is a local absolute path, else the
// admin landing page. Scheme-relative and absolute URLs are refused.
func SafeRedirect(from string) string {
	if from == "" || !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") || strings.HasPrefix(from, "/\\") {
		return DefaultLanding
	}

	u, err := url.Parse(from)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return DefaultLanding
	}

	return from
}

// LoginURL builds the login page address for a redirect away from path.
// flag is "expired", "invalid" or empty.
func LoginURL(from, flag string) string {
	q := url.Values{}
	if from != "" && from != DefaultLanding {
		q.Set("from", from)
	}

	if flag != "" {
		q.Set(flag, "true")
	}

	if len(q) == 0 {
		return LoginPath
	}

	return LoginPath + "?" + q.Encode()
}
