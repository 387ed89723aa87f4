package common

import (
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/adminkit/cmd/web/auth"
	"thirdcoast.systems/adminkit/cmd/web/internal/uihub"
)

// RequireClient returns the UI state of the requesting browser.
// Returns 401 if the session carries no client id.
func RequireClient(c echo.Context, sm *auth.SessionManager, hub *uihub.Hub) (*uihub.Client, error) {
	id, err := sm.ClientID(c.Request())
	if err != nil {
		return nil, ErrUnauthorized()
	}
	return hub.Client(id), nil
}
