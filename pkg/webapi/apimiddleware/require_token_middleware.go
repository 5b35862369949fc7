package apimiddleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/wedsite/wedsite/pkg/adminauth"
	"github.com/wedsite/wedsite/pkg/backend"
	"github.com/wedsite/wedsite/pkg/clog"
)

// RequireToken rejects requests whose bearer token is missing, expired or
// not accepted by the backend. It must run after BearerToken.
func RequireToken(client *backend.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rc := RequestContextFrom(c)
			if !rc.Authenticated() {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			if adminauth.Inspect(rc.BearerToken, time.Now()).State != adminauth.TokenValid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token expired or invalid")
			}

			if err := client.VerifyToken(c.Request().Context(), rc); err != nil {
				switch backend.StatusOf(err) {
				case http.StatusUnauthorized, http.StatusForbidden:
					return echo.NewHTTPError(http.StatusUnauthorized, "Token expired or invalid")
				default:
					clog.UsingCtx("auth").Errorf("Unable to verify token: %s", err)
					return echo.NewHTTPError(http.StatusServiceUnavailable, "Unable to verify token")
				}
			}

			return next(c)
		}
	}
}
