package admin

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/adminkit/cmd/web/auth"
	"thirdcoast.systems/adminkit/cmd/web/handlers/common"
	"thirdcoast.systems/adminkit/cmd/web/internal/uihub"
)

// HandleUIStream returns an SSE handler that delivers patches produced after
// their request finished, such as feedback banners fading out.
func HandleUIStream(sm *auth.SessionManager, hub *uihub.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		client, err := common.RequireClient(c, sm, hub)
		if err != nil {
			return err
		}

		if !hub.AcquireStream(client.ID) {
			return common.ErrTooManyRequests("too many open UI streams")
		}
		defer hub.ReleaseStream(client.ID)

		resp := c.Response()
		flusher, ok := resp.Writer.(http.Flusher)
		if !ok {
			return common.ErrInternal("streaming unsupported")
		}

		patchCh, unsubscribe := hub.Subscribe(client.ID)
		defer unsubscribe()

		_, out := common.NewPatchStream(c)

		// Keep-alive comments so proxies/browsers keep the stream open.
		_, _ = fmt.Fprintf(resp, ": connected\n\n")
		flusher.Flush()

		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-c.Request().Context().Done():
				return nil
			case patches, ok := <-patchCh:
				if !ok {
					return nil
				}
				if err := out.Apply(patches...); err != nil {
					return nil
				}
				flusher.Flush()
			case <-ticker.C:
				_, _ = fmt.Fprintf(resp, ": keepalive\n\n")
				flusher.Flush()
			}
		}
	}
}
