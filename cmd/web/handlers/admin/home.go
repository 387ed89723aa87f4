package admin

import (
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/adminkit/cmd/web/handlers/common"
	"thirdcoast.systems/adminkit/cmd/web/templates"
	"thirdcoast.systems/adminkit/internal/store"
)

func HandleAdminHomePage(settings *store.SettingsCache, vanity *store.Vanity) echo.HandlerFunc {
	return func(c echo.Context) error {
		return common.Render(c, templates.AdminHome(settings.Get(), len(vanity.List())))
	}
}
