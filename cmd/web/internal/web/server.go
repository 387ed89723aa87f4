package web

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"thirdcoast.systems/adminkit/cmd/web/auth"
	"thirdcoast.systems/adminkit/cmd/web/ctxkeys"
	"thirdcoast.systems/adminkit/cmd/web/handlers/admin"
	authhandlers "thirdcoast.systems/adminkit/cmd/web/handlers/auth"
	"thirdcoast.systems/adminkit/cmd/web/internal/uihub"
	staticpkg "thirdcoast.systems/adminkit/cmd/web/internal/web/utils/static"
	"thirdcoast.systems/adminkit/internal/config"
	"thirdcoast.systems/adminkit/internal/store"
	"thirdcoast.systems/adminkit/pkg/ui/confirm"
	"thirdcoast.systems/adminkit/pkg/ui/csrf"
	"thirdcoast.systems/adminkit/pkg/utils/passwords"
)

const pruneInterval = 5 * time.Minute

type Webserver struct {
	*echo.Echo
	sessionManager *auth.SessionManager
	staticCache    *staticpkg.StaticCache
	hub            *uihub.Hub
	settings       *store.SettingsCache
	vanity         *store.Vanity
	access         accessPolicy
	creds          authhandlers.Credentials
	confirmFormat  confirm.TextFormat
}

// NewWebserver builds the admin server. The idle-client janitor runs until
// ctx is cancelled.
func NewWebserver(ctx context.Context, conf *config.Config, sessionManager *auth.SessionManager) (*Webserver, error) {
	e := echo.New()

	staticCache, err := staticpkg.NewStaticCache()
	if err != nil {
		return nil, err
	}

	hash, err := passwords.Parse(conf.AdminPasswordHash)
	if err != nil {
		return nil, fmt.Errorf("admin password hash: %w", err)
	}

	format := confirm.FormatText
	if conf.ConfirmMarkdown {
		format = confirm.FormatMarkdown
	}

	webserver := &Webserver{
		Echo:           e,
		sessionManager: sessionManager,
		staticCache:    staticCache,
		hub:            uihub.NewHub(uihub.WithFeedbackDelay(conf.FeedbackDelay())),
		settings:       store.NewSettingsCache(),
		vanity:         store.NewVanity(),
		access:         newAccessPolicy(conf.AdminHost, conf.AllowedIPs()),
		creds:          authhandlers.Credentials{Username: conf.AdminUsername, Password: hash},
		confirmFormat:  format,
	}

	if err = webserver.setupMiddleware(conf.ProxyRanges()); err != nil {
		return nil, err
	}

	if err = webserver.registerRoutes(); err != nil {
		return nil, err
	}

	go webserver.pruneClients(ctx)

	return webserver, nil
}

func (s *Webserver) pruneClients(ctx context.Context) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.hub.PruneIdle(now); n > 0 {
				slog.Info("pruned idle ui clients", "count", n, "remaining", s.hub.Len())
			}
		}
	}
}

func (s *Webserver) setupMiddleware(proxies []string) error {
	s.HideBanner = true
	s.HidePort = true
	extract, err := ipExtractor(proxies)
	if err != nil {
		return err
	}
	s.IPExtractor = extract
	s.Use(middleware.BodyLimit("2M"))
	s.Use(middleware.Recover())
	s.Use(middleware.RequestID())
	s.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/admin/ui/stream"
		},
	}))
	s.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/admin/ui/stream" || c.Path() == "/healthz"
		},
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  false,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			slog.Info("request", fields...)
			return nil
		},
	}))

	// Expose the logged-in admin and the anti-forgery token to templates.
	s.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			r := c.Request()
			username, err := s.sessionManager.GetSession(r)
			if err != nil {
				return next(c)
			}
			ctx := context.WithValue(r.Context(), ctxkeys.Username, username)
			if token, err := s.sessionManager.CSRFToken(r); err == nil {
				if tok := csrf.Header(r, token).Get(csrf.HeaderName); tok != "" {
					ctx = context.WithValue(ctx, ctxkeys.CSRFToken, tok)
				}
			}
			c.SetRequest(r.WithContext(ctx))
			return next(c)
		}
	})

	return nil
}

func (s *Webserver) requireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.sessionManager.IsAuthenticated(c.Request()) {
			return c.Redirect(302, "/login")
		}
		return next(c)
	}
}

func (s *Webserver) registerRoutes() error {
	guard := adminAccessMiddleware(s.access)

	adminGroup := s.Group("/admin", guard, s.requireLogin, csrf.Middleware(func(c echo.Context) (string, error) {
		return s.sessionManager.CSRFToken(c.Request())
	}))

	adminGroup.GET("", admin.HandleAdminHomePage(s.settings, s.vanity))
	adminGroup.GET("/gomod", admin.HandleGoModPage(s.sessionManager, s.hub, s.settings))
	adminGroup.POST("/gomod", admin.HandleGoModSave(s.sessionManager, s.hub, s.settings))
	adminGroup.GET("/vanity", admin.HandleVanityPage(s.sessionManager, s.hub, s.vanity))
	adminGroup.POST("/vanity", admin.HandleVanityAdd(s.sessionManager, s.hub, s.vanity))
	adminGroup.POST("/vanity/:id/delete", admin.HandleVanityDelete(s.sessionManager, s.hub, s.vanity, s.confirmFormat))
	adminGroup.POST("/confirm/:token/:answer", admin.HandleConfirm(s.sessionManager, s.hub))
	adminGroup.GET("/ui/stream", admin.HandleUIStream(s.sessionManager, s.hub))

	// Health check
	s.GET("/healthz", func(c echo.Context) error {
		return c.String(200, "ok")
	})

	// Static file serving
	s.GET("/static/*", s.staticCache.ServeStaticFile("/static/"))

	// Auth routes
	s.GET("/login", authhandlers.HandleLoginPage(s.sessionManager), guard)
	s.POST("/login", authhandlers.HandleLogin(s.sessionManager, s.creds), guard)
	s.GET("/logout", authhandlers.HandleLogout(s.sessionManager, s.hub), guard)
	s.GET("/", func(c echo.Context) error {
		return c.Redirect(302, "/admin")
	})

	return nil
}
