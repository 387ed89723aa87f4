package patch

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	t.Parallel()

	sel, err := ID("goBinary")
	require.NoError(t, err)
	require.Equal(t, "#goBinary", sel)

	_, err = ID("  ")
	require.ErrorIs(t, err, ErrEmptyID)
}

func TestNestedAndMerge(t *testing.T) {
	t.Parallel()

	got := Nested("invalid.goBinary", true)
	require.Equal(t, map[string]any{"invalid": map[string]any{"goBinary": true}}, got)

	merged := Merge(got, Nested("invalid.goPath", true))
	merged = Merge(merged, map[string]any{"busy": false})
	require.Equal(t, map[string]any{
		"invalid": map[string]any{"goBinary": true, "goPath": true},
		"busy":    false,
	}, merged)
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	var r Recorder
	require.NoError(t, r.Apply(Remove("a"), Signals(map[string]any{"x": 1})))
	require.Len(t, r.Patches(), 2)
	r.Reset()
	require.Empty(t, r.Patches())
}

func TestSSEApplier_WritesDatastarEvents(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	sse := datastar.NewSSE(rr, req)

	err := NewSSEApplier(sse).Apply(
		Inner("goBinaryError", templ.Raw("<span>bad</span>")),
		Signals(Nested("invalid.goBinary", true)),
		Remove("confirmDialog"),
	)
	require.NoError(t, err)

	body := rr.Body.String()
	require.Equal(t, 2, strings.Count(body, "datastar-patch-elements"))
	require.Contains(t, body, "datastar-patch-signals")
	require.Contains(t, body, "#goBinaryError")
	require.Contains(t, body, "<span>bad</span>")
	require.Contains(t, body, `"goBinary":true`)
	require.Contains(t, body, "#confirmDialog")
}

func TestRender(t *testing.T) {
	t.Parallel()

	out, err := Render(context.Background(), templ.Raw("<b>x</b>"))
	require.NoError(t, err)
	require.Equal(t, "<b>x</b>", out)

	out, err = Render(context.Background(), Empty())
	require.NoError(t, err)
	require.Empty(t, out)
}
