package admin

import (
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
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

// gomodSignals represents the DataStar signals of the Go modules form.
type gomodSignals struct {
	GoMod gomodForm `json:"gomod"`
}

type gomodForm struct {
	GoBinary    string `json:"goBinary" form:"goBinary" validate:"required,startswith=/,max=512"`
	GoPath      string `json:"goPath" form:"goPath" validate:"required,startswith=/,max=512"`
	UploadLimit string `json:"uploadLimit" form:"uploadLimit" validate:"max=32"`
}

func (f gomodForm) trimmed() gomodForm {
	return gomodForm{
		GoBinary:    strings.TrimSpace(f.GoBinary),
		GoPath:      strings.TrimSpace(f.GoPath),
		UploadLimit: strings.TrimSpace(f.UploadLimit),
	}
}

// validateGoMod checks the form and parses the upload limit. An empty limit
// means unlimited.
func validateGoMod(v *validator.Validate, f gomodForm) (store.GoModSettings, []fielderr.FieldError, error) {
	fieldErrs, err := fielderr.FromValidation(v.Struct(f))
	if err != nil {
		return store.GoModSettings{}, nil, err
	}

	var limit uint64
	if f.UploadLimit != "" && !hasField(fieldErrs, templates.GoModFieldLimit) {
		limit, err = humanize.ParseBytes(f.UploadLimit)
		if err != nil {
			fieldErrs = append(fieldErrs, fielderr.FieldError{
				Name:    templates.GoModFieldLimit,
				Message: "Use a size like 64 MiB, 1G or 500K",
			})
		}
	}

	return store.GoModSettings{
		GoBinary:    f.GoBinary,
		GoPath:      f.GoPath,
		UploadLimit: limit,
	}, fieldErrs, nil
}

func hasField(errs []fielderr.FieldError, name string) bool {
	for _, fe := range errs {
		if fe.Name == name {
			return true
		}
	}
	return false
}

func HandleGoModSave(sm *auth.SessionManager, hub *uihub.Hub, settings *store.SettingsCache) echo.HandlerFunc {
	validate := fielderr.NewValidator()

	return func(c echo.Context) error {
		client, err := common.RequireClient(c, sm, hub)
		if err != nil {
			return err
		}

		signals := &gomodSignals{}
		if err := datastar.ReadSignals(c.Request(), signals); err != nil {
			return common.ErrBadRequest("invalid signals")
		}

		// IMPORTANT: NewSSE must be created AFTER ReadSignals.
		_, out := common.NewPatchStream(c)

		ran := withBusy(c, out, client, templates.GoModSaveID, templates.GoModSaveLabel, func() {
			common.Apply(c, out, fielderr.Clear(templates.GoModFields...)...)

			next, fieldErrs, err := validateGoMod(validate, signals.GoMod.trimmed())
			if err != nil {
				slog.Error("failed to validate go module settings", "error", err)
				showFeedback(c, out, client, feedback.RegionForm, feedback.ModeError, "Settings could not be checked.")
				return
			}
			if len(fieldErrs) > 0 {
				marks, err := fielderr.MarkAll(fieldErrs)
				if err != nil {
					slog.Error("failed to mark field errors", "error", err)
				}
				common.Apply(c, out, marks...)
				showFeedback(c, out, client, feedback.RegionForm, feedback.ModeError, "Please correct the highlighted fields.")
				return
			}

			settings.Set(next)
			slog.Info("go module settings saved",
				"go_binary", next.GoBinary,
				"go_path", next.GoPath,
				"upload_limit", next.UploadLimit,
			)

			// Echo the normalised values back into the form.
			common.Apply(c, out, patch.Signals(templates.GoModSignals(next)))
			showFeedback(c, out, client, feedback.RegionForm, feedback.ModeSuccess, "Settings saved.")
		})
		if !ran {
			showFeedback(c, out, client, feedback.RegionForm, feedback.ModeError, "A save is already in progress.")
		}
		return nil
	}
}
