// Package confirm shows a yes/no modal and runs a callback on "Yes".
//
// A dialog moves closed -> shown on Open, then shown -> confirmed (callback
// fired once) or shown -> dismissed (no callback) on Resolve. Only one dialog
// node exists per page: opening a new dialog dismisses the pending one.
package confirm

import (
	"context"
	"errors"
	"fmt"
	"html"
	"html/template"
	"sync"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"thirdcoast.systems/adminkit/pkg/ui/patch"
	"thirdcoast.systems/adminkit/pkg/utils/markdown"
)

const (
	// MountID is the page element the dialog is rendered into.
	MountID = "confirmDialogMount"
	// DialogID is the id of the dialog node itself.
	DialogID = "confirmDialog"
	TextID   = "confirmDialogText"
	YesID    = "confirmDialogYes"
	NoID     = "confirmDialogNo"
)

var (
	ErrUnknownDialog = errors.New("confirm: unknown dialog")
	ErrResolved      = errors.New("confirm: dialog already resolved")
)

// State is the lifecycle state of a Dialog.
type State int

const (
	StateShown State = iota
	StateConfirmed
	StateDismissed
)

func (s State) String() string {
	switch s {
	case StateShown:
		return "shown"
	case StateConfirmed:
		return "confirmed"
	case StateDismissed:
		return "dismissed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Answer is the user's response to a dialog.
type Answer bool

const (
	Yes Answer = true
	No  Answer = false
)

// Callback runs after "Yes" with the target given to Open. The returned
// patches are delivered together with the dialog's hide patch.
type Callback func(ctx context.Context, target string) ([]patch.Patch, error)

// TextFormat selects how the dialog text is turned into HTML.
type TextFormat int

const (
	// FormatText escapes the text. This is the default.
	FormatText TextFormat = iota
	// FormatTrustedHTML keeps markup allowed by a UGC sanitizing policy.
	FormatTrustedHTML
	// FormatMarkdown renders markdown, then sanitizes it.
	FormatMarkdown
)

type Option func(*openOptions)

type openOptions struct {
	format  TextFormat
	request string
}

// WithTrustedHTML keeps safe markup in the dialog text.
func WithTrustedHTML() Option {
	return func(o *openOptions) { o.format = FormatTrustedHTML }
}

// WithMarkdown renders the dialog text as markdown.
func WithMarkdown() Option {
	return func(o *openOptions) { o.format = FormatMarkdown }
}

// WithFormat sets the text format explicitly.
func WithFormat(f TextFormat) Option {
	return func(o *openOptions) { o.format = f }
}

// WithRequestOptions sets the options object passed to the buttons' @post
// actions, typically the anti-forgery headers.
func WithRequestOptions(js string) Option {
	return func(o *openOptions) { o.request = js }
}

// Dialog is one invocation of the confirmation modal.
type Dialog struct {
	Token  string
	Target string
	HTML   template.HTML
	// Label is the text without markup, used as the dialog's aria-label.
	Label string

	// mu is the owning Manager's lock; it guards state.
	mu    *sync.Mutex
	state State
	yes   Callback
}

// State returns the dialog's current state.
func (d *Dialog) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Manager tracks the dialogs of one page.
type Manager struct {
	mu         sync.Mutex
	dialogs    map[string]*Dialog
	current    string
	actionBase string
	policy     *bluemonday.Policy
}

// NewManager returns a Manager whose buttons post to
// <actionBase>/<token>/yes and <actionBase>/<token>/no.
func NewManager(actionBase string) *Manager {
	return &Manager{
		dialogs:    make(map[string]*Dialog),
		actionBase: actionBase,
		policy:     bluemonday.UGCPolicy(),
	}
}

// Open creates a fresh dialog and returns the patches that show it.
func (m *Manager) Open(text, target string, yes Callback, opts ...Option) (*Dialog, []patch.Patch) {
	o := openOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	d := &Dialog{
		Token:  uuid.NewString(),
		Target: target,
		HTML:   m.format(text, o.format),
		Label:  m.label(text, o.format),
		mu:     &m.mu,
		yes:    yes,
	}

	m.mu.Lock()
	// Resolved dialogs are kept only until the next Open so a double click
	// on a button still reports ErrResolved.
	for token, old := range m.dialogs {
		if old.state == StateShown {
			old.state = StateDismissed
		}
		delete(m.dialogs, token)
	}
	m.dialogs[d.Token] = d
	m.current = d.Token
	m.mu.Unlock()

	return d, []patch.Patch{
		patch.Inner(MountID, dialogView(d, m.actionBase, o.request)),
	}
}

// Resolve records the answer for token. On Yes the callback is invoked
// exactly once; its error is returned after the dialog is already hidden.
func (m *Manager) Resolve(ctx context.Context, token string, answer Answer) ([]patch.Patch, error) {
	m.mu.Lock()
	d, ok := m.dialogs[token]
	if !ok {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrUnknownDialog, token)
	}
	if d.state != StateShown {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s is %s", ErrResolved, token, d.state)
	}
	if answer == Yes {
		d.state = StateConfirmed
	} else {
		d.state = StateDismissed
	}
	if m.current == token {
		m.current = ""
	}
	m.mu.Unlock()

	out := []patch.Patch{patch.Remove(DialogID)}
	if answer != Yes || d.yes == nil {
		return out, nil
	}
	more, err := d.yes(ctx, d.Target)
	if err != nil {
		return out, fmt.Errorf("confirm callback for %q: %w", d.Target, err)
	}
	return append(out, more...), nil
}

// Pending returns the dialog currently shown, if any.
func (m *Manager) Pending() (*Dialog, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.dialogs[m.current]
	return d, ok
}

func (m *Manager) label(text string, f TextFormat) string {
	switch f {
	case FormatTrustedHTML:
		return html.UnescapeString(bluemonday.StrictPolicy().Sanitize(text))
	case FormatMarkdown:
		return markdown.ToText(text)
	default:
		return text
	}
}

func (m *Manager) format(text string, f TextFormat) template.HTML {
	switch f {
	case FormatTrustedHTML:
		return template.HTML(m.policy.Sanitize(text))
	case FormatMarkdown:
		return markdown.ToHTML(text)
	default:
		return template.HTML(template.HTMLEscapeString(text))
	}
}
