package csrf

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// TokenSource returns the token expected for the current request.
type TokenSource func(c echo.Context) (string, error)

// Middleware rejects unsafe requests that are cross-origin or whose header
// does not match the expected token.
func Middleware(source TokenSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			r := c.Request()
			if SafeMethod(r.Method) {
				return next(c)
			}
			if !SameOrigin(r) {
				slog.Warn("csrf: cross-origin request rejected", "method", r.Method, "uri", r.RequestURI, "origin", r.Header.Get("Origin"))
				return echo.NewHTTPError(http.StatusForbidden, "cross-origin request")
			}
			expected, err := source(c)
			if err != nil || expected == "" {
				slog.Warn("csrf: no token for request", "method", r.Method, "uri", r.RequestURI, "error", err)
				return echo.NewHTTPError(http.StatusForbidden, "missing anti-forgery token")
			}
			got := r.Header.Get(HeaderName)
			if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
				slog.Warn("csrf: token mismatch", "method", r.Method, "uri", r.RequestURI)
				return echo.NewHTTPError(http.StatusForbidden, "invalid anti-forgery token")
			}
			return next(c)
		}
	}
}
