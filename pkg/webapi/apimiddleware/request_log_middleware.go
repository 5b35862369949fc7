package apimiddleware

import (
	"time"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/wedsite/wedsite/pkg/clog"
)

// RequestLogger logs one line per handled request.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			entry := clog.UsingCtx("http").WithFields(log.Fields{
				"method":     c.Request().Method,
				"path":       c.Request().URL.Path,
				"status":     c.Response().Status,
				"elapsed":    time.Since(start).Round(time.Millisecond),
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			})

			switch {
			case c.Response().Status >= 500:
				entry.Error("request")
			case c.Response().Status >= 400:
				entry.Warn("request")
			default:
				entry.Info("request")
			}

			return nil
		}
	}
}
