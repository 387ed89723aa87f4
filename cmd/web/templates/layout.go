package templates

import (
	"github.com/a-h/templ"
	"thirdcoast.systems/adminkit/pkg/ui/busy"
	"thirdcoast.systems/adminkit/pkg/ui/fielderr"
)

const (
	BootstrapCSS   = "https://cdn.jsdelivr.net/npm/bootstrap@4.6.2/dist/css/bootstrap.min.css"
	FontAwesomeCSS = "https://cdn.jsdelivr.net/npm/@fortawesome/fontawesome-free@6.5.2/css/all.min.css"
	DatastarJS     = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

	// StreamURL delivers patches produced after a request has finished.
	StreamURL = "/admin/ui/stream"
)

// bodyAttrs declares the signals every page shares.
func bodyAttrs() templ.Attributes {
	return templ.Attributes{
		"data-signals__ifmissing": jsonAttr(map[string]any{
			fielderr.InvalidSignal: map[string]any{},
			busy.Signal:            map[string]any{},
		}),
	}
}

func streamInit() string {
	return "@get('" + StreamURL + "')"
}
