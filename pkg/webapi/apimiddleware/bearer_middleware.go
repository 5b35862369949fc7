package apimiddleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/wedsite/wedsite/pkg/adminauth"
	"github.com/wedsite/wedsite/pkg/backend"
)

const RequestContextKey = "request_context"

type BearerConfig struct {
	Skipper middleware.Skipper

	// CookieFallback lets the admin_token cookie stand in for a missing
	// Authorization header.
	CookieFallback bool
}

// BearerToken builds the backend.RequestContext for the request and stores
// it on the echo context. It never rejects a request; missing credentials
// just produce an anonymous context and the backend decides.
func BearerToken(config BearerConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			c.Set(RequestContextKey, requestContext(c, config.CookieFallback))
			return next(c)
		}
	}
}

// RequestContextFrom returns the context stored by BearerToken, or builds
// one from the request when the middleware didn't run.
func RequestContextFrom(c echo.Context) backend.RequestContext {
	if rc, ok := c.Get(RequestContextKey).(backend.RequestContext); ok {
		return rc
	}

	return requestContext(c, false)
}

func requestContext(c echo.Context, cookieFallback bool) backend.RequestContext {
	rc := backend.RequestContext{RequestID: requestID(c)}

	if token := tokenFromHeader(c); token != "" {
		return rc.WithToken(token)
	}

	if cookieFallback {
		if cookie, err := c.Cookie(adminauth.CookieName); err == nil {
			return rc.WithToken(cookie.Value)
		}
	}

	return rc
}

func tokenFromHeader(c echo.Context) string {
	value := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
	if len(value) > 7 && strings.EqualFold(value[:7], "bearer ") {
		return strings.TrimSpace(value[7:])
	}

	return ""
}

func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}

	return c.Request().Header.Get(echo.HeaderXRequestID)
}
