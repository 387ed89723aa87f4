// Package busy swaps a button's label for a spinner while work is in flight.
package busy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/a-h/templ"
	"thirdcoast.systems/adminkit/pkg/ui/patch"
)

// Signal holds one boolean per busy element; buttons bind disabled to it.
const Signal = "busy"

// SpinnerHTML precedes the original label while an element is busy.
const SpinnerHTML = `<i class="fas fa-spinner fa-pulse"></i>&nbsp;&nbsp;`

var (
	ErrAlreadyBusy = errors.New("busy: element already disabled")
	ErrNotBusy     = errors.New("busy: element not disabled")
)

// Registry remembers the label of every disabled element until it is enabled
// again. Every DisableWithSpinner must be paired with EnableWithoutSpinner;
// there is no timeout.
type Registry struct {
	mu     sync.Mutex
	labels map[string]string
}

func NewRegistry() *Registry {
	return &Registry{labels: make(map[string]string)}
}

// DisableWithSpinner stores label and disables the element with the given id.
// The label is a trusted HTML fragment from a server template.
func (r *Registry) DisableWithSpinner(id, label string) ([]patch.Patch, error) {
	if _, err := patch.ID(id); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.labels[id]; ok {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyBusy, id)
	}
	r.labels[id] = label
	return []patch.Patch{
		patch.Signals(patch.Nested(Signal+"."+id, true)),
		patch.Inner(id, templ.Raw(SpinnerHTML+label)),
	}, nil
}

// EnableWithoutSpinner restores the stored label exactly and re-enables the
// element.
func (r *Registry) EnableWithoutSpinner(id string) ([]patch.Patch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	label, ok := r.labels[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotBusy, id)
	}
	delete(r.labels, id)
	return []patch.Patch{
		patch.Inner(id, templ.Raw(label)),
		patch.Signals(patch.Nested(Signal+"."+id, false)),
	}, nil
}

// Busy reports whether id is currently disabled.
func (r *Registry) Busy(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.labels[id]
	return ok
}

// Pending lists the ids still waiting for EnableWithoutSpinner.
func (r *Registry) Pending() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.labels))
	for id := range r.labels {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Button renders a button whose disabled state follows $busy[id].
func Button(id, class, label string, attrs templ.Attributes) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		all := templ.Attributes{
			"data-attr": fmt.Sprintf(`{"disabled": !!$%s[%q]}`, Signal, id),
		}
		for k, v := range attrs {
			all[k] = v
		}
		if _, err := fmt.Fprintf(w, `<button type="button" id="%s" class="%s"`,
			templ.EscapeString(id), templ.EscapeString(class)); err != nil {
			return err
		}
		if err := templ.RenderAttributes(ctx, w, all); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ">"+label+"</button>"); err != nil {
			return err
		}
		return nil
	})
}
