package templates

import "thirdcoast.systems/adminkit/internal/store"

// Element ids of the Go modules form.
const (
	GoModFormID      = "gomodForm"
	GoModSaveID      = "gomodSave"
	GoModSaveLabel   = "Save"
	GoModSignal      = "gomod"
	GoModFieldBinary = "goBinary"
	GoModFieldPath   = "goPath"
	GoModFieldLimit  = "uploadLimit"
)

// GoModFields lists the form's fields in display order.
var GoModFields = []string{GoModFieldBinary, GoModFieldPath, GoModFieldLimit}

// GoModSignals is the initial signal state of the form.
func GoModSignals(s store.GoModSettings) map[string]any {
	return map[string]any{
		GoModSignal: map[string]any{
			GoModFieldBinary: s.GoBinary,
			GoModFieldPath:   s.GoPath,
			GoModFieldLimit:  s.UploadLimitDisplay(),
		},
	}
}
