// Package csrf attaches and verifies the anti-forgery header.
//
// The token is rendered into the page as <meta name="anti_csrf_token">.
// Requests with unsafe methods must echo it back in X-Anti-CSRF-Token.
package csrf

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
)

const (
	HeaderName = "X-Anti-CSRF-Token"
	MetaName   = "anti_csrf_token"
)

// SafeMethod reports whether method is exempt from the anti-forgery check.
// The comparison is case-sensitive.
func SafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}

// Header returns the headers to attach to r. Same-origin requests get the
// token; cross-origin requests get an empty header so the token never leaves
// the site.
func Header(r *http.Request, token string) http.Header {
	h := http.Header{}
	if SameOrigin(r) {
		h.Set(HeaderName, token)
	}
	return h
}

// SameOrigin compares the request's Origin (or Referer when Origin is absent)
// with the host the request was sent to. A request carrying neither header is
// treated as same-origin.
func SameOrigin(r *http.Request) bool {
	source := r.Header.Get("Origin")
	if source == "" {
		source = r.Header.Get("Referer")
	}
	if source == "" {
		return true
	}
	if source == "null" {
		return false
	}
	u, err := url.Parse(source)
	if err != nil || u.Host == "" {
		return false
	}
	if !strings.EqualFold(u.Scheme, requestScheme(r)) {
		return false
	}
	return strings.EqualFold(u.Host, requestHost(r))
}

func requestScheme(r *http.Request) string {
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		return "https"
	}
	return "http"
}

func requestHost(r *http.Request) string {
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-Host")); fwd != "" {
		return fwd
	}
	return r.Host
}

// NewToken returns a fresh random token.
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate csrf token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// MetaTag renders the meta element that carries the token.
func MetaTag(token string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<meta name="%s" content="%s">`, MetaName, templ.EscapeString(token))
		return err
	})
}

// RequestOptions returns the options object for Datastar @post/@put/@delete
// actions that sends the token header.
func RequestOptions(token string) string {
	b, _ := json.Marshal(map[string]map[string]string{
		"headers": {HeaderName: token},
	})
	return string(b)
}
