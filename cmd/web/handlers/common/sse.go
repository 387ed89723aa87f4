package common

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"
	"thirdcoast.systems/adminkit/pkg/ui/patch"
)

// SetSSEHeaders sets headers needed for SSE that datastar.NewSSE() does NOT set.
// datastar already sets Content-Type, Cache-Control, and Connection.
// This only adds X-Accel-Buffering for nginx/reverse proxy compatibility.
func SetSSEHeaders(c echo.Context) {
	c.Response().Header().Set("X-Accel-Buffering", "no")
}

// NewPatchStream opens the SSE response and returns an Applier writing to it.
// Read signals before calling: NewSSE flushes the response headers, which
// closes the request body.
func NewPatchStream(c echo.Context) (*datastar.ServerSentEventGenerator, *patch.SSEApplier) {
	SetSSEHeaders(c)
	sse := datastar.NewSSE(c.Response().Writer, c.Request())
	return sse, patch.NewSSEApplier(sse)
}

// Apply delivers patches and logs a failed write. A failed write means the
// browser went away, so there is nobody left to report it to.
func Apply(c echo.Context, out patch.Applier, patches ...patch.Patch) {
	if len(patches) == 0 {
		return
	}
	if err := out.Apply(patches...); err != nil {
		slog.Warn("failed to apply patches", "uri", c.Request().RequestURI, "error", err)
	}
}
