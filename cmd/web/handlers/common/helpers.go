package common

import (
	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/adminkit/cmd/web/templates"
	"thirdcoast.systems/adminkit/pkg/ui/csrf"
)

// RequestOptions returns the @post options carrying the request's
// anti-forgery header, or "" when the request has no token.
func RequestOptions(c echo.Context) string {
	tok := templates.CSRFToken(c.Request().Context())
	if tok == "" {
		return ""
	}
	return csrf.RequestOptions(tok)
}

// Render writes a full page.
func Render(c echo.Context, page templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return page.Render(c.Request().Context(), c.Response())
}
