package admin

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/adminkit/cmd/web/handlers/common"
	"thirdcoast.systems/adminkit/cmd/web/internal/uihub"
	"thirdcoast.systems/adminkit/pkg/ui/feedback"
	"thirdcoast.systems/adminkit/pkg/ui/patch"
)

// showFeedback shows text in region now; the hide arrives later over the
// client's UI stream.
func showFeedback(c echo.Context, out patch.Applier, client *uihub.Client, region string, mode feedback.Mode, text string) {
	show, err := client.Banners.Show(region, mode, text, 0)
	if err != nil {
		slog.Error("failed to show feedback", "region", region, "error", err)
		return
	}
	common.Apply(c, out, show...)
}

// withBusy disables the button id while fn runs and restores its label
// afterwards. It reports false without running fn if the button is already
// busy, e.g. from a second tab of the same session.
func withBusy(c echo.Context, out patch.Applier, client *uihub.Client, id, label string, fn func()) bool {
	disable, err := client.Busy.DisableWithSpinner(id, label)
	if err != nil {
		slog.Warn("busy toggle rejected", "id", id, "error", err)
		return false
	}
	common.Apply(c, out, disable...)
	defer func() {
		enable, err := client.Busy.EnableWithoutSpinner(id)
		if err != nil {
			slog.Warn("busy toggle rejected", "id", id, "error", err)
			return
		}
		common.Apply(c, out, enable...)
	}()
	fn()
	return true
}
