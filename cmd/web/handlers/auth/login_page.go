package auth

import (
	"github.com/labstack/echo/v4"
	webauth "thirdcoast.systems/adminkit/cmd/web/auth"
	"thirdcoast.systems/adminkit/cmd/web/handlers/common"
	"thirdcoast.systems/adminkit/cmd/web/templates"
)

func HandleLoginPage(sm *webauth.SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		if sm.IsAuthenticated(c.Request()) {
			return c.Redirect(302, "/admin")
		}
		return common.Render(c, templates.Login(""))
	}
}
