package fielderr

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/a-h/templ"
	"thirdcoast.systems/adminkit/pkg/ui/patch"
)

// BindingSignal holds one boolean per bound form.
const BindingSignal = "bindings"

var ErrAlreadyBound = errors.New("fielderr: form already bound")

// Binder hands out keydown-clear bindings, at most one live binding per form.
type Binder struct {
	mu    sync.Mutex
	bound map[string]*Binding
}

func NewBinder() *Binder {
	return &Binder{bound: make(map[string]*Binding)}
}

// Binding clears a field's invalid state when the user types into it.
// The handler is delegated on the form so it covers every .form-control
// inside it, including controls added later.
type Binding struct {
	binder   *Binder
	formID   string
	disposed bool
}

// Bind scopes a keydown-clear handler to formID.
func (b *Binder) Bind(formID string) (*Binding, error) {
	if _, err := patch.ID(formID); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.bound[formID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyBound, formID)
	}
	bd := &Binding{binder: b, formID: formID}
	b.bound[formID] = bd
	return bd, nil
}

// Rebind drops any live binding for formID and binds it again. Used when a
// page is rendered afresh and the previous handler went away with the DOM.
func (b *Binder) Rebind(formID string) (*Binding, error) {
	b.mu.Lock()
	if old, ok := b.bound[formID]; ok {
		old.disposed = true
		delete(b.bound, formID)
	}
	b.mu.Unlock()
	return b.Bind(formID)
}

// Bound reports whether formID has a live binding.
func (b *Binder) Bound(formID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.bound[formID]
	return ok
}

func (bd *Binding) FormID() string {
	return bd.formID
}

// Attrs returns the attributes to render on the <form> element.
func (bd *Binding) Attrs() templ.Attributes {
	init, _ := json.Marshal(map[string]any{
		BindingSignal: map[string]any{bd.formID: true},
		InvalidSignal: map[string]any{},
	})
	return templ.Attributes{
		"id":                      bd.formID,
		"data-signals__ifmissing": string(init),
		"data-on:keydown":         bd.handler(),
	}
}

func (bd *Binding) handler() string {
	return fmt.Sprintf(
		"%s && evt.target.id && evt.target.classList.contains('form-control') && (%s[evt.target.id] = false)",
		signalRef(BindingSignal, bd.formID), "$"+InvalidSignal,
	)
}

// Patch re-enables the handler on an already rendered form.
func (bd *Binding) Patch() []patch.Patch {
	return []patch.Patch{patch.Signals(patch.Nested(BindingSignal+"."+bd.formID, true))}
}

// Dispose turns the handler off and frees the form id for a new Bind.
// Calling it again returns nil.
func (bd *Binding) Dispose() []patch.Patch {
	b := bd.binder
	b.mu.Lock()
	defer b.mu.Unlock()
	if bd.disposed {
		return nil
	}
	bd.disposed = true
	if b.bound[bd.formID] == bd {
		delete(b.bound, bd.formID)
	}
	return []patch.Patch{patch.Signals(patch.Nested(BindingSignal+"."+bd.formID, false))}
}
