package csrf

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"thirdcoast.systems/adminkit/pkg/ui/patch"
)

func TestSafeMethod(t *testing.T) {
	t.Parallel()

	for _, m := range []string{"GET", "HEAD", "OPTIONS", "TRACE"} {
		require.True(t, SafeMethod(m), m)
	}
	for _, m := range []string{"POST", "PUT", "DELETE", "PATCH", "get", "Head", "", "CONNECT", "GET "} {
		require.False(t, SafeMethod(m), m)
	}
}

func TestHeader(t *testing.T) {
	t.Parallel()

	t.Run("same origin gets token", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest("POST", "http://admin.example.com/admin/vanity", nil)
		req.Header.Set("Origin", "http://admin.example.com")
		h := Header(req, "tok")
		require.Len(t, h, 1)
		require.Equal(t, "tok", h.Get(HeaderName))
	})

	t.Run("no origin headers is same origin", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest("POST", "http://admin.example.com/", nil)
		require.Equal(t, "tok", Header(req, "tok").Get(HeaderName))
	})

	t.Run("cross origin gets nothing", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest("POST", "http://admin.example.com/", nil)
		req.Header.Set("Origin", "http://evil.example.com")
		require.Empty(t, Header(req, "tok"))
	})

	t.Run("referer fallback", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest("POST", "http://admin.example.com/", nil)
		req.Header.Set("Referer", "http://evil.example.com/page")
		require.Empty(t, Header(req, "tok"))

		req.Header.Set("Referer", "http://admin.example.com/admin/gomod")
		require.Equal(t, "tok", Header(req, "tok").Get(HeaderName))
	})

	t.Run("scheme must match", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest("POST", "https://admin.example.com/", nil)
		req.TLS = &tls.ConnectionState{}
		req.Header.Set("Origin", "http://admin.example.com")
		require.Empty(t, Header(req, "tok"))

		req.Header.Set("Origin", "https://admin.example.com")
		require.Equal(t, "tok", Header(req, "tok").Get(HeaderName))
	})

	t.Run("opaque origin", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest("POST", "http://admin.example.com/", nil)
		req.Header.Set("Origin", "null")
		require.Empty(t, Header(req, "tok"))
	})

	t.Run("forwarded host", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest("POST", "http://127.0.0.1:8080/", nil)
		req.Header.Set("X-Forwarded-Host", "admin.example.com")
		req.Header.Set("X-Forwarded-Proto", "https")
		req.Header.Set("Origin", "https://admin.example.com")
		require.Equal(t, "tok", Header(req, "tok").Get(HeaderName))
	})
}

func TestNewToken(t *testing.T) {
	t.Parallel()

	a, err := NewToken()
	require.NoError(t, err)
	b, err := NewToken()
	require.NoError(t, err)
	require.Len(t, a, 43)
	require.NotEqual(t, a, b)
}

func TestMetaTagAndRequestOptions(t *testing.T) {
	t.Parallel()

	out, err := patch.Render(context.Background(), MetaTag(`a"b`))
	require.NoError(t, err)
	require.Equal(t, `<meta name="anti_csrf_token" content="a&#34;b">`, out)

	require.Equal(t, `{"headers":{"X-Anti-CSRF-Token":"tok"}}`, RequestOptions("tok"))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	e := echo.New()
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	source := func(c echo.Context) (string, error) { return "secret", nil }
	h := Middleware(source)(ok)

	run := func(req *http.Request) error {
		rr := httptest.NewRecorder()
		return h(e.NewContext(req, rr))
	}
	status := func(err error) int {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he.Code
		}
		return 0
	}

	t.Run("safe method passes without token", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, run(httptest.NewRequest("GET", "http://a.test/", nil)))
	})

	t.Run("unsafe method needs token", func(t *testing.T) {
		t.Parallel()
		err := run(httptest.NewRequest("POST", "http://a.test/", nil))
		require.Equal(t, http.StatusForbidden, status(err))
	})

	t.Run("wrong token", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest("DELETE", "http://a.test/", nil)
		req.Header.Set(HeaderName, "nope")
		require.Equal(t, http.StatusForbidden, status(run(req)))
	})

	t.Run("right token", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest("POST", "http://a.test/", nil)
		req.Header.Set("Origin", "http://a.test")
		req.Header.Set(HeaderName, "secret")
		require.NoError(t, run(req))
	})

	t.Run("cross origin rejected even with token", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest("POST", "http://a.test/", nil)
		req.Header.Set("Origin", "http://b.test")
		req.Header.Set(HeaderName, "secret")
		require.Equal(t, http.StatusForbidden, status(run(req)))
	})

	t.Run("token source error", func(t *testing.T) {
		t.Parallel()
		failing := Middleware(func(c echo.Context) (string, error) { return "", errors.New("no session") })(ok)
		req := httptest.NewRequest("POST", "http://a.test/", nil)
		req.Header.Set(HeaderName, "")
		err := failing(e.NewContext(req, httptest.NewRecorder()))
		require.Equal(t, http.StatusForbidden, status(err))
	})
}
