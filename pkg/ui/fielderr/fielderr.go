// Package fielderr paints validation errors onto form fields.
//
// A field named "goBinary" is expected to have an error slot with id
// "goBinaryError". Invalid state lives in the page signal $invalid.<name>
// and the field binds its is-invalid class to it (see FieldAttrs).
package fielderr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"thirdcoast.systems/adminkit/pkg/ui/patch"
)

const (
	ErrorSlotSuffix = "Error"
	InvalidSignal   = "invalid"
	InvalidClass    = "is-invalid"
)

// FieldError is a message attached to a named form field.
type FieldError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Name + ": " + e.Message
}

// SlotID returns the id of the element that displays the field's message.
func SlotID(name string) string {
	return name + ErrorSlotSuffix
}

// Mark returns the patches that flag one field as invalid.
func Mark(fe FieldError) ([]patch.Patch, error) {
	return MarkAll([]FieldError{fe})
}

// MarkAll flags every listed field. Fields not in errs are not touched.
// A later entry for the same name replaces the earlier message.
func MarkAll(errs []FieldError) ([]patch.Patch, error) {
	if len(errs) == 0 {
		return nil, nil
	}
	invalid := map[string]any{}
	slots := make([]patch.Patch, 0, len(errs))
	for i, fe := range errs {
		if _, err := patch.ID(fe.Name); err != nil {
			return nil, fmt.Errorf("field error %d: %w", i, err)
		}
		invalid[fe.Name] = true
		slots = append(slots, patch.Inner(SlotID(fe.Name), Message(fe.Message)))
	}
	out := make([]patch.Patch, 0, len(slots)+1)
	out = append(out, patch.Signals(map[string]any{InvalidSignal: invalid}))
	return append(out, slots...), nil
}

// Clear resets the named fields to the valid state and empties their slots.
func Clear(names ...string) []patch.Patch {
	if len(names) == 0 {
		return nil
	}
	valid := map[string]any{}
	out := make([]patch.Patch, 0, len(names)+1)
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		valid[name] = false
		out = append(out, patch.Inner(SlotID(name), patch.Empty()))
	}
	if len(valid) == 0 {
		return nil
	}
	return append([]patch.Patch{patch.Signals(map[string]any{InvalidSignal: valid})}, out...)
}

// Message renders msg escaped, with each newline turned into <br>.
func Message(msg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for i, line := range strings.Split(msg, "\n") {
			if i > 0 {
				if _, err := io.WriteString(w, "<br>"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, templ.EscapeString(line)); err != nil {
				return err
			}
		}
		return nil
	})
}

// FieldAttrs binds the is-invalid class of a field to its invalid signal.
func FieldAttrs(name string) templ.Attributes {
	return templ.Attributes{
		"id":         name,
		"name":       name,
		"data-class": fmt.Sprintf("{%q: %s}", InvalidClass, signalRef(InvalidSignal, name)),
	}
}

// signalRef returns a bracketed signal reference such as $invalid["goPath"].
// Bracket access keeps the key's case; attribute names would lowercase it.
func signalRef(root, key string) string {
	k, _ := json.Marshal(key)
	return "$" + root + "[" + string(k) + "]"
}
