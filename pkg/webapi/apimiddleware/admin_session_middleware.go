package apimiddleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/wedsite/wedsite/pkg/adminauth"
)

const TokenInfoKey = "token_info"

type AdminSessionConfig struct {
	Skipper middleware.Skipper
	Now     func() time.Time
}

// AdminSession guards server rendered admin pages. Without a cookie the
// browser is sent to the login page; an expired or undecodable token is
// cleared first and the login page is told why. The token's signature is
// not checked here, the backend rejects forged tokens on use.
func AdminSession(config AdminSessionConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	if config.Now == nil {
		config.Now = time.Now
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			from := c.Request().URL.RequestURI()

			cookie, err := c.Cookie(adminauth.CookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusSeeOther, adminauth.LoginURL(from, ""))
			}

			info := adminauth.Inspect(cookie.Value, config.Now())
			switch info.State {
			case adminauth.TokenExpired:
				c.SetCookie(adminauth.ClearCookie())
				return c.Redirect(http.StatusSeeOther, adminauth.LoginURL(from, "expired"))
			case adminauth.TokenInvalid:
				c.SetCookie(adminauth.ClearCookie())
				return c.Redirect(http.StatusSeeOther, adminauth.LoginURL(from, "invalid"))
			}

			c.Set(TokenInfoKey, info)
			c.Set(RequestContextKey, requestContext(c, false).WithToken(cookie.Value))

			return next(c)
		}
	}
}

// TokenInfoFrom returns what AdminSession learned about the token.
func TokenInfoFrom(c echo.Context) adminauth.TokenInfo {
	info, _ := c.Get(TokenInfoKey).(adminauth.TokenInfo)
	return info
}
