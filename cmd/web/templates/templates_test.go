package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"
	"thirdcoast.systems/adminkit/cmd/web/ctxkeys"
	"thirdcoast.systems/adminkit/internal/store"
	"thirdcoast.systems/adminkit/pkg/ui/fielderr"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(ctx, &sb))
	return sb.String()
}

func adminCtx() context.Context {
	ctx := context.WithValue(context.Background(), ctxkeys.Username, "admin")
	return context.WithValue(ctx, ctxkeys.CSRFToken, "tok")
}

func TestPost(t *testing.T) {
	t.Parallel()

	require.Equal(t, `@post("/admin/gomod")`, Post(context.Background(), "/admin/gomod"))
	require.Equal(t, `@post("/admin/gomod", {"headers":{"X-Anti-CSRF-Token":"tok"}})`, Post(adminCtx(), "/admin/gomod"))
}

func TestLayout_Anonymous(t *testing.T) {
	t.Parallel()

	out := render(t, context.Background(), Login("Invalid username or password"))
	require.Contains(t, out, `<meta name="anti_csrf_token" content="">`)
	require.Contains(t, out, `id="genericFeedback" class="feedback invisible"`)
	require.Contains(t, out, `id="confirmDialogMount"`)
	require.Contains(t, out, "Invalid username or password")
	require.NotContains(t, out, StreamURL)
	require.NotContains(t, out, "Log out")
}

func TestLayout_RendersChildren(t *testing.T) {
	t.Parallel()

	ctx := templ.WithChildren(adminCtx(), templ.Raw(`<p id="pageBody">body</p>`))
	out := render(t, ctx, Layout("Settings"))
	require.True(t, strings.HasPrefix(out, "<!doctype html>"))
	require.Contains(t, out, "<title>Settings · Admin</title>")
	require.Contains(t, out, `<p id="pageBody">body</p></div><div id="confirmDialogMount">`)
}

func TestLayout_LoggedIn(t *testing.T) {
	t.Parallel()

	out := render(t, adminCtx(), AdminHome(store.DefaultGoModSettings(), 2))
	require.Contains(t, out, `content="tok"`)
	require.Contains(t, out, StreamURL)
	require.Contains(t, out, "Log out")
	require.Contains(t, out, "2 configured")
	require.Contains(t, out, "32 MiB")
}

func TestGoModPage(t *testing.T) {
	t.Parallel()

	binding, err := fielderr.NewBinder().Bind(GoModFormID)
	require.NoError(t, err)

	out := render(t, adminCtx(), GoModPage(store.DefaultGoModSettings(), binding))
	for _, name := range GoModFields {
		require.Contains(t, out, `id="`+name+`"`)
		require.Contains(t, out, `id="`+name+`Error"`)
	}
	require.Contains(t, out, `id="gomodForm"`)
	require.Contains(t, out, `id="gomodSave"`)
	require.Contains(t, out, `id="formFeedback"`)
	require.Contains(t, out, "/usr/local/go/bin/go")
	require.Contains(t, out, "form-control")
}

func TestVanityRow_EscapesHost(t *testing.T) {
	t.Parallel()

	out := render(t, adminCtx(), VanityRow(store.VanityHost{ID: "abc", Host: "<b>x</b>"}))
	require.Contains(t, out, `id="vanity-abc"`)
	require.Contains(t, out, "&lt;b&gt;x&lt;/b&gt;")
	require.Contains(t, out, "/admin/vanity/abc/delete")
}
