package fielderr

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"thirdcoast.systems/adminkit/pkg/ui/patch"
)

func render(t *testing.T, p patch.Patch) string {
	t.Helper()
	out, err := patch.Render(context.Background(), p.Element)
	require.NoError(t, err)
	return out
}

func TestMarkAll_MarksOnlyListedFields(t *testing.T) {
	t.Parallel()

	errs := []FieldError{
		{Name: "goBinary", Message: "Go binary does not exists on the server"},
		{Name: "goPath", Message: "line one\nline two"},
	}
	patches, err := MarkAll(errs)
	require.NoError(t, err)
	require.Len(t, patches, 3)

	sig := patches[0]
	require.Equal(t, patch.KindSignals, sig.Kind)
	require.Equal(t, map[string]any{
		InvalidSignal: map[string]any{"goBinary": true, "goPath": true},
	}, sig.Signals)

	require.Equal(t, "#goBinaryError", patches[1].Selector)
	require.Equal(t, patch.ModeInner, patches[1].Mode)
	require.Equal(t, "Go binary does not exists on the server", render(t, patches[1]))

	require.Equal(t, "#goPathError", patches[2].Selector)
	require.Equal(t, "line one<br>line two", render(t, patches[2]))

	for _, p := range patches {
		require.NotContains(t, p.Selector, "hostName")
	}
}

func TestMark_EscapesMessage(t *testing.T) {
	t.Parallel()

	patches, err := Mark(FieldError{Name: "hostName", Message: "<script>x</script>\nok"})
	require.NoError(t, err)
	html := render(t, patches[1])
	require.NotContains(t, html, "<script>")
	require.True(t, strings.HasSuffix(html, "<br>ok"))
}

func TestMarkAll_Empty(t *testing.T) {
	t.Parallel()

	patches, err := MarkAll(nil)
	require.NoError(t, err)
	require.Nil(t, patches)
}

func TestMarkAll_EmptyNameIsDiagnosed(t *testing.T) {
	t.Parallel()

	_, err := MarkAll([]FieldError{{Name: "ok", Message: "m"}, {Name: "", Message: "m"}})
	require.ErrorIs(t, err, patch.ErrEmptyID)
}

func TestClear(t *testing.T) {
	t.Parallel()

	patches := Clear("goBinary", "", "goPath")
	require.Len(t, patches, 3)
	require.Equal(t, map[string]any{
		InvalidSignal: map[string]any{"goBinary": false, "goPath": false},
	}, patches[0].Signals)
	require.Equal(t, "", render(t, patches[1]))

	require.Nil(t, Clear())
	require.Nil(t, Clear(" "))
}

func TestFieldAttrs(t *testing.T) {
	t.Parallel()

	attrs := FieldAttrs("goPath")
	require.Equal(t, "goPath", attrs["id"])
	require.Equal(t, `{"is-invalid": $invalid["goPath"]}`, attrs["data-class"])
}

type settingsForm struct {
	GoBinary string `form:"goBinary" validate:"required"`
	GoPath   string `form:"goPath" validate:"required,min=3"`
	Ignored  string `form:"-"`
}

func TestFromValidation(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	err := v.Struct(settingsForm{GoPath: "ab"})
	fes, err := FromValidation(err)
	require.NoError(t, err)
	require.Equal(t, []FieldError{
		{Name: "goBinary", Message: "This field is required"},
		{Name: "goPath", Message: "Must be at least 3 characters"},
	}, fes)

	fes, err = FromValidation(nil)
	require.NoError(t, err)
	require.Nil(t, fes)

	other := errors.New("boom")
	_, err = FromValidation(other)
	require.Equal(t, other, err)
}

func TestBinder_ScopedAndDisposable(t *testing.T) {
	t.Parallel()

	b := NewBinder()
	bd, err := b.Bind("settingsForm")
	require.NoError(t, err)
	require.True(t, b.Bound("settingsForm"))

	_, err = b.Bind("settingsForm")
	require.ErrorIs(t, err, ErrAlreadyBound)

	// A different form is independent.
	other, err := b.Bind("vanityForm")
	require.NoError(t, err)
	require.Equal(t, "vanityForm", other.FormID())

	attrs := bd.Attrs()
	require.Equal(t, "settingsForm", attrs["id"])
	require.Contains(t, attrs["data-on:keydown"], `$bindings["settingsForm"]`)
	require.Contains(t, attrs["data-on:keydown"], "form-control")
	require.Contains(t, attrs["data-signals__ifmissing"], `"settingsForm":true`)

	require.Equal(t, map[string]any{BindingSignal: map[string]any{"settingsForm": true}}, bd.Patch()[0].Signals)

	out := bd.Dispose()
	require.Len(t, out, 1)
	require.Equal(t, map[string]any{BindingSignal: map[string]any{"settingsForm": false}}, out[0].Signals)
	require.Nil(t, bd.Dispose())
	require.False(t, b.Bound("settingsForm"))

	_, err = b.Bind("settingsForm")
	require.NoError(t, err)
}

func TestBinder_Rebind(t *testing.T) {
	t.Parallel()

	b := NewBinder()
	first, err := b.Bind("f")
	require.NoError(t, err)
	second, err := b.Rebind("f")
	require.NoError(t, err)
	require.NotSame(t, first, second)

	// Disposing the stale binding must not release the new one.
	require.Nil(t, first.Dispose())
	require.True(t, b.Bound("f"))

	_, err = b.Bind("")
	require.ErrorIs(t, err, patch.ErrEmptyID)
}
