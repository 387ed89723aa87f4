package confirm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

func dialogView(d *Dialog, actionBase, request string) templ.Component {
	yes := postAction(actionBase+"/"+d.Token+"/yes", request)
	no := postAction(actionBase+"/"+d.Token+"/no", request)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div class="modal fade show d-block" id="%s" tabindex="-1" role="dialog" aria-modal="true" aria-label="%s" data-token="%s">`+
				`<div class="modal-dialog modal-dialog-centered" role="document">`+
				`<div class="modal-content pr-2 pl-2">`+
				`<div class="modal-body">`+
				`<div class="p-1 mt-2"><div id="%s">%s</div></div>`+
				`<div class="mt-1 mb-5"><div class="float-right">`+
				`<button type="button" id="%s" class="no btn btn-sm btn-outline-secondary pl-3 pr-3 mr-1" data-on:click="%s">No</button>`+
				`<button type="button" id="%s" class="yes btn btn-sm btn-danger pl-3 pr-3" data-on:click="%s">Yes</button>`+
				`</div></div>`+
				`</div></div></div></div>`,
			DialogID, templ.EscapeString(d.Label), templ.EscapeString(d.Token),
			TextID, string(d.HTML),
			NoID, templ.EscapeString(no),
			YesID, templ.EscapeString(yes),
		)
		return err
	})
}

func postAction(url, request string) string {
	if request == "" {
		return fmt.Sprintf("@post(%s)", jsString(url))
	}
	return fmt.Sprintf("@post(%s, %s)", jsString(url), request)
}

// jsString quotes s as a JS string literal. JSON string syntax is valid JS.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
