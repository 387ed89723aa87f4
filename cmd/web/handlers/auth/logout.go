package auth

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	webauth "thirdcoast.systems/adminkit/cmd/web/auth"
	"thirdcoast.systems/adminkit/cmd/web/internal/uihub"
)

// HandleLogout ends the session and discards the browser's UI state.
func HandleLogout(sm *webauth.SessionManager, hub *uihub.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		if id, err := sm.ClientID(c.Request()); err == nil {
			hub.Forget(id)
		}
		if err := sm.ClearSession(c.Response().Writer, c.Request()); err != nil {
			slog.Warn("failed to clear session", "error", err)
		}
		return c.Redirect(302, "/login")
	}
}
