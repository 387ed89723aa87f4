package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/adminkit/cmd/web/auth"
	"thirdcoast.systems/adminkit/cmd/web/handlers/common"
	"thirdcoast.systems/adminkit/cmd/web/internal/uihub"
	"thirdcoast.systems/adminkit/cmd/web/templates"
	"thirdcoast.systems/adminkit/internal/store"
	"thirdcoast.systems/adminkit/pkg/ui/confirm"
	"thirdcoast.systems/adminkit/pkg/ui/feedback"
	"thirdcoast.systems/adminkit/pkg/ui/patch"
)

// HandleVanityDelete asks for confirmation; the host is removed once the
// admin answers yes (see HandleConfirm).
func HandleVanityDelete(sm *auth.SessionManager, hub *uihub.Hub, vanity *store.Vanity, format confirm.TextFormat) echo.HandlerFunc {
	return func(c echo.Context) error {
		client, err := common.RequireClient(c, sm, hub)
		if err != nil {
			return err
		}

		h, ok := vanity.Get(c.Param("id"))
		if !ok {
			return common.ErrNotFound("vanity host not found")
		}

		text := fmt.Sprintf("Delete vanity host %s?", h.Host)
		if format == confirm.FormatMarkdown {
			text = fmt.Sprintf("Delete vanity host **%s**?\n\nModules served from it stop resolving.", h.Host)
		}

		yes := func(ctx context.Context, id string) ([]patch.Patch, error) {
			deleted, err := vanity.Delete(id)
			if err != nil {
				return nil, err
			}
			slog.Info("vanity host deleted", "host", deleted.Host, "id", deleted.ID)
			out := []patch.Patch{patch.Remove(templates.VanityRowID(deleted))}
			show, err := client.Banners.Show(feedback.RegionGeneric, feedback.ModeSuccess, "Deleted "+deleted.Host+".", 0)
			if err != nil {
				return out, err
			}
			return append(out, show...), nil
		}

		_, show := client.Dialogs.Open(text, h.ID, yes,
			confirm.WithFormat(format),
			confirm.WithRequestOptions(common.RequestOptions(c)),
		)

		_, out := common.NewPatchStream(c)
		common.Apply(c, out, show...)
		return nil
	}
}
