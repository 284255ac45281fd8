package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/alphaprime/internal/config"
	"github.com/nfrund/alphaprime/internal/enrollment"
	"github.com/nfrund/alphaprime/internal/handlers"
	appmiddleware "github.com/nfrund/alphaprime/internal/middleware"
	"github.com/nfrund/alphaprime/internal/module"
	"github.com/nfrund/alphaprime/internal/pubsub"
	"github.com/nfrund/alphaprime/internal/registry"
	"github.com/nfrund/alphaprime/internal/rendering"
	"github.com/nfrund/alphaprime/web"
)

// Dependencies holds everything the HTTP server needs. The catalog is not
// listed: the content module registers it during Boot.
type Dependencies struct {
	Config     *config.Config
	Forms      *enrollment.Store
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
	Renderer   *rendering.UniversalRenderer
	Modules    []module.Module
}

// Server holds the echo instance, the module registry and the handlers.
type Server struct {
	E        *echo.Echo
	Cfg      *config.Config
	Registry *registry.Registry
	modules  []module.Module
	booted   []module.Module
	forms    *enrollment.Store
}

// New creates a new Server instance with middleware configured. Routes and
// modules are added by Boot.
func New(deps Dependencies) *Server {
	cfg := deps.Config

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = deps.Renderer
	e.Validator = handlers.NewValidator()
	setupErrorHandling(e)

	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger := appmiddleware.FromContext(c.Request().Context())
			if v.Error != nil {
				logger.Warn("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "error", v.Error)
				return nil
			}
			logger.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	e.StaticFS("/static", web.Static())

	reg := registry.New(cfg)
	if deps.Publisher != nil {
		registry.Set(reg, registry.PublisherKey, deps.Publisher)
	}
	if deps.Subscriber != nil {
		registry.Set(reg, registry.SubscriberKey, deps.Subscriber)
	}

	return &Server{
		E:        e,
		Cfg:      cfg,
		Registry: reg,
		modules:  deps.Modules,
		forms:    deps.Forms,
	}
}

// Boot registers every module's services, mounts the site routes on the
// services found in the registry, then boots each module with the /api
// route group. A module that fails to boot stops the sequence; modules
// already booted are shut down by Shutdown.
func (s *Server) Boot(ctx context.Context) error {
	for _, mod := range s.modules {
		if err := mod.Register(s.Registry); err != nil {
			return fmt.Errorf("register module %s: %w", mod.Name(), err)
		}
		slog.Debug("Module registered", "module", mod.Name())
	}

	cat, ok := registry.Get(s.Registry, registry.CatalogServiceKey)
	if !ok {
		return errors.New("no module registered the catalog service")
	}
	publisher, _ := registry.Get(s.Registry, registry.PublisherKey)
	s.registerRoutes(handlers.NewSiteHandler(cat, s.forms, publisher))

	api := s.E.Group("/api")
	for _, mod := range s.modules {
		if err := mod.Boot(ctx, api, s.Registry); err != nil {
			return fmt.Errorf("boot module %s: %w", mod.Name(), err)
		}
		s.booted = append(s.booted, mod)
		slog.Info("Module booted", "module", mod.Name())
	}
	return nil
}

// Shutdown stops the HTTP server, then shuts modules down in reverse boot
// order.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.E.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	for i := len(s.booted) - 1; i >= 0; i-- {
		mod := s.booted[i]
		if err := mod.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown module %s: %w", mod.Name(), err))
		}
	}
	s.booted = nil
	return errors.Join(errs...)
}
