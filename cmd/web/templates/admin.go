package templates

import (
	"github.com/a-h/templ"
	"thirdcoast.systems/adminkit/cmd/web/viewtypes"
	"thirdcoast.systems/adminkit/pkg/ui/fielderr"
)

type formField struct {
	Label string
	Name  string
	// Bind is the signal path the input is bound to.
	Bind        string
	Placeholder string
}

func (f formField) inputAttrs() templ.Attributes {
	a := fielderr.FieldAttrs(f.Name)
	a["class"] = viewtypes.InputClass
	a["data-bind"] = f.Bind
	if f.Placeholder != "" {
		a["placeholder"] = f.Placeholder
	}
	return a
}
