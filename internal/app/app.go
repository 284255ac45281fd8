// Package app wires the application's services together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nfrund/alphaprime/internal/accounts"
	"github.com/nfrund/alphaprime/internal/config"
	"github.com/nfrund/alphaprime/internal/server"
	"github.com/samber/do/v2"
)

// App is the assembled application.
type App struct {
	Config   *config.Config
	Server   *server.Server
	Accounts *accounts.MemoryStore

	injector *do.RootScope
}

// New builds every service from cfg. The returned App owns the event bus and
// tracer; call Close once the server has stopped.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	injector := do.New()
	provide(ctx, injector, cfg)

	srv, err := do.Invoke[*server.Server](injector)
	if err != nil {
		return nil, fmt.Errorf("build server: %w", err)
	}

	return &App{
		Config:   cfg,
		Server:   srv,
		Accounts: do.MustInvoke[*accounts.MemoryStore](injector),
		injector: injector,
	}, nil
}

// Close releases the event bus and flushes pending trace spans.
func (a *App) Close(ctx context.Context) error {
	var errs []error

	if bridge, err := do.Invoke[*bus](a.injector); err == nil {
		if err := bridge.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close event bus: %w", err))
		}
	}
	if t, err := do.Invoke[*tracing](a.injector); err == nil {
		if err := t.cleanup(ctx); err != nil {
			errs = append(errs, fmt.Errorf("flush traces: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	slog.Info("Application closed")
	return nil
}
