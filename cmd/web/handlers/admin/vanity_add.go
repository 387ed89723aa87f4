package admin

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"
	"thirdcoast.systems/adminkit/cmd/web/auth"
	"thirdcoast.systems/adminkit/cmd/web/handlers/common"
	"thirdcoast.systems/adminkit/cmd/web/internal/uihub"
	"thirdcoast.systems/adminkit/cmd/web/templates"
	"thirdcoast.systems/adminkit/internal/store"
	"thirdcoast.systems/adminkit/pkg/ui/feedback"
	"thirdcoast.systems/adminkit/pkg/ui/fielderr"
	"thirdcoast.systems/adminkit/pkg/ui/patch"
)

type vanitySignals struct {
	Vanity vanityForm `json:"vanity"`
}

type vanityForm struct {
	Host string `json:"host" form:"vanityHost" validate:"required,max=253,hostname_rfc1123"`
}

func HandleVanityAdd(sm *auth.SessionManager, hub *uihub.Hub, vanity *store.Vanity) echo.HandlerFunc {
	validate := fielderr.NewValidator()

	return func(c echo.Context) error {
		client, err := common.RequireClient(c, sm, hub)
		if err != nil {
			return err
		}

		signals := &vanitySignals{}
		if err := datastar.ReadSignals(c.Request(), signals); err != nil {
			return common.ErrBadRequest("invalid signals")
		}
		signals.Vanity.Host = strings.TrimSpace(signals.Vanity.Host)

		_, out := common.NewPatchStream(c)

		withBusy(c, out, client, templates.VanityAddID, templates.VanityAddLabel, func() {
			common.Apply(c, out, fielderr.Clear(templates.VanityFieldHost)...)

			fieldErrs, err := fielderr.FromValidation(validate.Struct(signals.Vanity))
			if err != nil {
				slog.Error("failed to validate vanity host", "error", err)
				showFeedback(c, out, client, feedback.RegionGeneric, feedback.ModeError, "The host could not be checked.")
				return
			}
			if len(fieldErrs) == 0 {
				h, err := vanity.Add(signals.Vanity.Host)
				switch {
				case errors.Is(err, store.ErrVanityExists):
					fieldErrs = append(fieldErrs, fielderr.FieldError{Name: templates.VanityFieldHost, Message: "This host is already configured"})
				case err != nil:
					slog.Error("failed to add vanity host", "host", signals.Vanity.Host, "error", err)
					showFeedback(c, out, client, feedback.RegionGeneric, feedback.ModeError, "The host could not be added.")
					return
				default:
					slog.Info("vanity host added", "host", h.Host, "id", h.ID)
					common.Apply(c, out,
						patch.Append(templates.VanityRowsID, templates.VanityRow(h)),
						patch.Signals(patch.Nested(templates.VanitySignal+".host", "")),
					)
					showFeedback(c, out, client, feedback.RegionGeneric, feedback.ModeSuccess, "Added "+h.Host+".")
					return
				}
			}

			marks, err := fielderr.MarkAll(fieldErrs)
			if err != nil {
				slog.Error("failed to mark field errors", "error", err)
			}
			common.Apply(c, out, marks...)
		})
		return nil
	}
}
