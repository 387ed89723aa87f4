package admin

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/adminkit/cmd/web/auth"
	"thirdcoast.systems/adminkit/cmd/web/handlers/common"
	"thirdcoast.systems/adminkit/cmd/web/internal/uihub"
	"thirdcoast.systems/adminkit/cmd/web/templates"
	"thirdcoast.systems/adminkit/internal/store"
)

func HandleVanityPage(sm *auth.SessionManager, hub *uihub.Hub, vanity *store.Vanity) echo.HandlerFunc {
	return func(c echo.Context) error {
		client, err := common.RequireClient(c, sm, hub)
		if err != nil {
			return err
		}
		binding, err := client.Forms.Rebind(templates.VanityFormID)
		if err != nil {
			slog.Error("failed to bind form", "form", templates.VanityFormID, "error", err)
			return common.ErrInternal("failed to render page")
		}
		return common.Render(c, templates.VanityPage(vanity.List(), binding))
	}
}
