package admin

import (
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/adminkit/cmd/web/auth"
	"thirdcoast.systems/adminkit/cmd/web/handlers/common"
	"thirdcoast.systems/adminkit/cmd/web/internal/uihub"
	"thirdcoast.systems/adminkit/pkg/ui/confirm"
	"thirdcoast.systems/adminkit/pkg/ui/feedback"
	"thirdcoast.systems/adminkit/pkg/ui/patch"
)

// HandleConfirm receives the Yes/No answer of a confirm dialog.
func HandleConfirm(sm *auth.SessionManager, hub *uihub.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		client, err := common.RequireClient(c, sm, hub)
		if err != nil {
			return err
		}

		var answer confirm.Answer
		switch c.Param("answer") {
		case "yes":
			answer = confirm.Yes
		case "no":
			answer = confirm.No
		default:
			return common.ErrBadRequest("answer must be yes or no")
		}

		token := c.Param("token")
		patches, err := client.Dialogs.Resolve(c.Request().Context(), token, answer)
		_, out := common.NewPatchStream(c)

		switch {
		case err == nil:
		case errors.Is(err, confirm.ErrUnknownDialog), errors.Is(err, confirm.ErrResolved):
			// Stale dialog, e.g. a double click or a dialog from before a
			// restart. Make sure it is gone.
			slog.Warn("stale confirm answer", "token", token, "error", err)
			patches = []patch.Patch{patch.Remove(confirm.DialogID)}
		default:
			slog.Error("confirm callback failed", "token", token, "error", err)
			common.Apply(c, out, patches...)
			showFeedback(c, out, client, feedback.RegionGeneric, feedback.ModeError, "The action failed.")
			return nil
		}

		common.Apply(c, out, patches...)
		return nil
	}
}
