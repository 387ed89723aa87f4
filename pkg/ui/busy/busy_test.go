package busy

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"
	"thirdcoast.systems/adminkit/pkg/ui/patch"
)

func innerHTML(t *testing.T, patches []patch.Patch) string {
	t.Helper()
	for _, p := range patches {
		if p.Kind == patch.KindElements {
			out, err := patch.Render(context.Background(), p.Element)
			require.NoError(t, err)
			return out
		}
	}
	t.Fatal("no element patch")
	return ""
}

func TestDisableEnable_RestoresExactLabel(t *testing.T) {
	t.Parallel()

	labels := []string{
		"Save",
		"",
		`<i class="fas fa-save"></i> Save &amp; close`,
		"multi\nline",
	}
	for _, label := range labels {
		r := NewRegistry()

		disabled, err := r.DisableWithSpinner("saveBtn", label)
		require.NoError(t, err)
		require.Equal(t, map[string]any{Signal: map[string]any{"saveBtn": true}}, disabled[0].Signals)
		require.Equal(t, "#saveBtn", disabled[1].Selector)
		require.Equal(t, SpinnerHTML+label, innerHTML(t, disabled))
		require.True(t, r.Busy("saveBtn"))

		enabled, err := r.EnableWithoutSpinner("saveBtn")
		require.NoError(t, err)
		require.Equal(t, label, innerHTML(t, enabled))
		require.Equal(t, map[string]any{Signal: map[string]any{"saveBtn": false}}, enabled[1].Signals)
		require.False(t, r.Busy("saveBtn"))
	}
}

func TestUnpairedCallsAreDiagnosed(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	_, err := r.EnableWithoutSpinner("saveBtn")
	require.ErrorIs(t, err, ErrNotBusy)

	_, err = r.DisableWithSpinner("saveBtn", "Save")
	require.NoError(t, err)
	_, err = r.DisableWithSpinner("saveBtn", "Saving")
	require.ErrorIs(t, err, ErrAlreadyBusy)

	// The first label survives the rejected second call.
	enabled, err := r.EnableWithoutSpinner("saveBtn")
	require.NoError(t, err)
	require.Equal(t, "Save", innerHTML(t, enabled))

	_, err = r.DisableWithSpinner("", "x")
	require.ErrorIs(t, err, patch.ErrEmptyID)
}

func TestPending(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	_, _ = r.DisableWithSpinner("b", "B")
	_, _ = r.DisableWithSpinner("a", "A")
	require.Equal(t, []string{"a", "b"}, r.Pending())
}

func TestButton(t *testing.T) {
	t.Parallel()

	out, err := patch.Render(context.Background(), Button("saveBtn", "btn btn-primary", "Save", templ.Attributes{
		"data-on:click": "@post('/x')",
	}))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, `<button type="button" id="saveBtn" class="btn btn-primary"`))
	require.Contains(t, out, "data-attr=")
	require.Contains(t, out, "data-on:click=")
	require.True(t, strings.HasSuffix(out, ">Save</button>"))
}
