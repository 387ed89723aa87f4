// Package feedback shows transient status messages in a banner region and
// hides them again after a delay.
package feedback

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/a-h/templ"
	"thirdcoast.systems/adminkit/pkg/ui/patch"
)

// Well-known banner regions.
const (
	RegionGeneric = "genericFeedback"
	RegionForm    = "formFeedback"
)

const (
	ClassSuccess   = "text-success"
	ClassError     = "text-danger"
	ClassVisible   = "visible"
	ClassInvisible = "invisible"
	// BaseClass carries the fade transition.
	BaseClass = "feedback"
)

// Mode selects the banner styling.
type Mode string

const (
	ModeSuccess Mode = "success"
	ModeError   Mode = "error"
)

// Class returns the text class for m. Anything but success is an error.
func (m Mode) Class() string {
	if m == ModeSuccess {
		return ClassSuccess
	}
	return ClassError
}

// State is a snapshot of a banner.
type State struct {
	Region     string
	Visible    bool
	Mode       Mode
	Text       string
	Generation uint64
}

// Banner is the state machine for one region. Every Show starts a new
// generation; Hide only acts on the current one, so a late hide from an
// earlier Show never clears newer content.
type Banner struct {
	mu    sync.Mutex
	state State
}

func NewBanner(region string) *Banner {
	return &Banner{state: State{Region: region}}
}

func (b *Banner) Region() string {
	return b.state.Region
}

// State returns a snapshot.
func (b *Banner) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Show displays text styled by mode and returns the new generation.
func (b *Banner) Show(mode Mode, text string) (uint64, []patch.Patch) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Generation++
	b.state.Visible = true
	b.state.Mode = mode
	b.state.Text = text
	return b.state.Generation, []patch.Patch{patch.Outer(b.state.Region, View(b.state))}
}

// Hide returns the region to its hidden, unstyled baseline if gen is still
// current. It returns nil for stale generations or an already hidden banner.
func (b *Banner) Hide(gen uint64) []patch.Patch {
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.state.Generation || !b.state.Visible {
		return nil
	}
	b.state.Visible = false
	b.state.Mode = ""
	b.state.Text = ""
	return []patch.Patch{patch.Outer(b.state.Region, View(b.state))}
}

// View renders the region for s. A hidden region is empty and carries no
// text class.
func View(s State) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !s.Visible {
			_, err := fmt.Fprintf(w, `<div id="%s" class="%s %s" role="status" aria-live="polite"></div>`,
				templ.EscapeString(s.Region), BaseClass, ClassInvisible)
			return err
		}
		_, err := fmt.Fprintf(w, `<div id="%s" class="%s %s" role="status" aria-live="polite"><strong class="%s">%s</strong></div>`,
			templ.EscapeString(s.Region), BaseClass, ClassVisible, s.Mode.Class(), templ.EscapeString(s.Text))
		return err
	})
}
