// Package patch describes declarative DOM changes produced by the UI helpers.
//
// Helpers never touch a connection directly. They return []Patch values and
// an Applier decides how the browser receives them (Datastar SSE in the web
// app, a Recorder in tests).
package patch

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/a-h/templ"
)

// Kind distinguishes the three kinds of patch the browser understands.
type Kind int

const (
	KindElements Kind = iota
	KindSignals
	KindScript
)

// Mode controls how an element patch is merged into the target.
type Mode string

const (
	ModeOuter   Mode = "outer"
	ModeInner   Mode = "inner"
	ModeReplace Mode = "replace"
	ModeRemove  Mode = "remove"
	ModeAppend  Mode = "append"
	ModePrepend Mode = "prepend"
)

var ErrEmptyID = errors.New("patch: empty element id")

// Patch is a single declarative DOM change.
type Patch struct {
	Kind     Kind
	Selector string
	Mode     Mode
	Element  templ.Component
	Signals  map[string]any
	Script   string
}

// Applier delivers patches to a browser.
type Applier interface {
	Apply(patches ...Patch) error
}

// ApplierFunc adapts a function to the Applier interface.
type ApplierFunc func(patches ...Patch) error

func (f ApplierFunc) Apply(patches ...Patch) error {
	return f(patches...)
}

// Discard drops every patch.
var Discard Applier = ApplierFunc(func(...Patch) error { return nil })

// ID returns the CSS selector for an element id.
func ID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrEmptyID
	}
	return "#" + id, nil
}

// Elements patches component into the elements matched by selector.
func Elements(selector string, c templ.Component, mode Mode) Patch {
	if c == nil {
		c = Empty()
	}
	if mode == "" {
		mode = ModeOuter
	}
	return Patch{Kind: KindElements, Selector: selector, Mode: mode, Element: c}
}

// Inner replaces the children of the element with the given id.
func Inner(id string, c templ.Component) Patch {
	return Elements("#"+id, c, ModeInner)
}

// Outer replaces the element with the given id.
func Outer(id string, c templ.Component) Patch {
	return Elements("#"+id, c, ModeOuter)
}

// Append adds c as the last child of the element with the given id.
func Append(id string, c templ.Component) Patch {
	return Elements("#"+id, c, ModeAppend)
}

// Remove deletes the element with the given id.
func Remove(id string) Patch {
	return Elements("#"+id, Empty(), ModeRemove)
}

// Signals merges values into the page signal store.
func Signals(values map[string]any) Patch {
	return Patch{Kind: KindSignals, Signals: values}
}

// Script runs js once in the browser.
func Script(js string) Patch {
	return Patch{Kind: KindScript, Script: js}
}

// Nested builds {"a": {"b": value}} from the dotted path "a.b".
func Nested(path string, value any) map[string]any {
	parts := strings.Split(path, ".")
	out := map[string]any{parts[len(parts)-1]: value}
	for i := len(parts) - 2; i >= 0; i-- {
		out = map[string]any{parts[i]: out}
	}
	return out
}

// Merge deep-merges src into dst and returns dst.
func Merge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = map[string]any{}
	}
	for k, v := range src {
		sv, srcIsMap := v.(map[string]any)
		dv, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[k] = Merge(dv, sv)
			continue
		}
		dst[k] = v
	}
	return dst
}

// Empty renders nothing.
func Empty() templ.Component {
	return templ.NopComponent
}

// Render renders c to a string.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if c == nil {
		return "", nil
	}
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Recorder collects applied patches in memory.
type Recorder struct {
	mu      sync.Mutex
	patches []Patch
}

func (r *Recorder) Apply(patches ...Patch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patches = append(r.patches, patches...)
	return nil
}

// Patches returns a copy of everything recorded so far.
func (r *Recorder) Patches() []Patch {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Patch, len(r.patches))
	copy(out, r.patches)
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.patches = nil
	r.mu.Unlock()
}
