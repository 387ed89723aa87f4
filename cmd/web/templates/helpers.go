// Package templates holds the HTML components of the admin UI.
package templates

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/a-h/templ"
	"thirdcoast.systems/adminkit/cmd/web/ctxkeys"
	"thirdcoast.systems/adminkit/pkg/ui/csrf"
	"thirdcoast.systems/adminkit/pkg/ui/fielderr"
)

// CSRFToken returns the anti-forgery token of the request, if any.
func CSRFToken(ctx context.Context) string {
	tok, _ := ctx.Value(ctxkeys.CSRFToken).(string)
	return tok
}

// Username returns the logged-in admin, if any.
func Username(ctx context.Context) string {
	name, _ := ctx.Value(ctxkeys.Username).(string)
	return name
}

// Post returns a Datastar @post action for url carrying the request's
// anti-forgery header.
func Post(ctx context.Context, url string) string {
	u, _ := json.Marshal(url)
	if tok := CSRFToken(ctx); tok != "" {
		return fmt.Sprintf("@post(%s, %s)", u, csrf.RequestOptions(tok))
	}
	return fmt.Sprintf("@post(%s)", u)
}

func clickPost(ctx context.Context, url string) templ.Attributes {
	return templ.Attributes{"data-on:click": Post(ctx, url)}
}

// formAttrs binds a form to its field errors, seeds its signals and posts
// it to action on submit.
func formAttrs(ctx context.Context, binding *fielderr.Binding, signals any, action string) templ.Attributes {
	a := binding.Attrs()
	a["data-signals"] = jsonAttr(signals)
	a["data-on:submit__prevent"] = Post(ctx, action)
	return a
}

func jsonAttr(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
