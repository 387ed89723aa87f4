package auth

import (
	"crypto/subtle"
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	webauth "thirdcoast.systems/adminkit/cmd/web/auth"
	"thirdcoast.systems/adminkit/cmd/web/handlers/common"
	"thirdcoast.systems/adminkit/cmd/web/templates"
	"thirdcoast.systems/adminkit/pkg/utils/passwords"
)

// Credentials is the single configured admin account.
type Credentials struct {
	Username string
	Password passwords.Hash
}

func HandleLogin(sm *webauth.SessionManager, creds Credentials) echo.HandlerFunc {
	return func(c echo.Context) error {
		username := strings.TrimSpace(c.FormValue("username"))
		password := c.FormValue("password")

		if username == "" || password == "" {
			return common.Render(c, templates.Login("Username and password are required"))
		}

		// Always run the hash comparison so a wrong username costs the same.
		matches, err := creds.Password.Matches(password)
		if err != nil {
			slog.Error("failed to compare password hash", "error", err)
		}
		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(creds.Username)) == 1
		if err != nil || !matches || !userOK {
			slog.Warn("failed login", "username", username, "remote_ip", c.RealIP())
			return common.Render(c, templates.Login("Invalid username or password"))
		}

		if err := sm.SaveSession(c.Response().Writer, c.Request(), creds.Username); err != nil {
			slog.Error("failed to save session", "error", err)
			return common.Render(c, templates.Login("An error occurred. Please try again."))
		}

		slog.Info("admin logged in", "username", creds.Username, "remote_ip", c.RealIP())
		return c.Redirect(302, "/admin")
	}
}
