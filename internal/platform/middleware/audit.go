package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hospiops/facilityhub/internal/platform/auth"
)

// Audit returns middleware that writes a structured audit line for every
// mutating request. Reads are covered by the request logger; the audit
// trail records who changed facility records.
func Audit(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			method := c.Request().Method
			if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
				return err
			}

			rid, _ := c.Get("request_id").(string)
			ctx := c.Request().Context()

			logger.Info().
				Str("request_id", rid).
				Str("user_id", auth.UserIDFromContext(ctx)).
				Strs("roles", auth.RolesFromContext(ctx)).
				Str("method", method).
				Str("path", c.Request().URL.Path).
				Int("status", c.Response().Status).
				Time("at", time.Now()).
				Msg("audit")

			return err
		}
	}
}
