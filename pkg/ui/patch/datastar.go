package patch

import (
	"encoding/json"
	"fmt"

	"github.com/starfederation/datastar-go/datastar"
)

// SSEApplier writes patches as Datastar server-sent events.
type SSEApplier struct {
	sse *datastar.ServerSentEventGenerator
}

func NewSSEApplier(sse *datastar.ServerSentEventGenerator) *SSEApplier {
	return &SSEApplier{sse: sse}
}

func (a *SSEApplier) Apply(patches ...Patch) error {
	for _, p := range patches {
		switch p.Kind {
		case KindElements:
			opts := []datastar.PatchElementOption{modeOption(p.Mode)}
			if p.Selector != "" {
				opts = append(opts, datastar.WithSelector(p.Selector))
			}
			el := p.Element
			if el == nil {
				el = Empty()
			}
			if err := a.sse.PatchElementTempl(el, opts...); err != nil {
				return fmt.Errorf("patch elements %s: %w", p.Selector, err)
			}
		case KindSignals:
			b, err := json.Marshal(p.Signals)
			if err != nil {
				return fmt.Errorf("marshal signals: %w", err)
			}
			if err := a.sse.PatchSignals(b); err != nil {
				return fmt.Errorf("patch signals: %w", err)
			}
		case KindScript:
			if err := a.sse.ExecuteScript(p.Script); err != nil {
				return fmt.Errorf("execute script: %w", err)
			}
		default:
			return fmt.Errorf("unknown patch kind %d", p.Kind)
		}
	}
	return nil
}

func modeOption(m Mode) datastar.PatchElementOption {
	switch m {
	case ModeInner:
		return datastar.WithModeInner()
	case ModeReplace:
		return datastar.WithModeReplace()
	case ModeRemove:
		return datastar.WithModeRemove()
	case ModeAppend:
		return datastar.WithModeAppend()
	case ModePrepend:
		return datastar.WithModePrepend()
	default:
		return datastar.WithModeOuter()
	}
}
