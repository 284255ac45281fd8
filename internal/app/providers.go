package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/alphaprime/internal/accounts"
	"github.com/nfrund/alphaprime/internal/backend"
	"github.com/nfrund/alphaprime/internal/catalog"
	"github.com/nfrund/alphaprime/internal/config"
	"github.com/nfrund/alphaprime/internal/domain"
	"github.com/nfrund/alphaprime/internal/enrollment"
	"github.com/nfrund/alphaprime/internal/pubsub"
	"github.com/nfrund/alphaprime/internal/rendering"
	"github.com/nfrund/alphaprime/internal/server"
	"github.com/nfrund/alphaprime/internal/sms"
	"github.com/nfrund/alphaprime/internal/verification"
	"github.com/nfrund/alphaprime/web"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/trace"
)

type tracing struct {
	tracer  trace.Tracer
	cleanup func(context.Context) error
}

// bus wraps the watermill bridge so the injector hands out one instance for
// both the publisher and subscriber roles.
type bus struct {
	*pubsub.WatermillBridge
}

// provide registers every service constructor with the injector. Services
// are built lazily on first Invoke.
func provide(ctx context.Context, i do.Injector, cfg *config.Config) {
	do.ProvideValue(i, cfg)

	do.Provide(i, func(i do.Injector) (*tracing, error) {
		cfg := do.MustInvoke[*config.Config](i)
		tracer, cleanup, err := pubsub.SetupOTel(ctx, pubsub.TracingConfig{
			Enabled:     cfg.TracingEnabled,
			ServiceName: cfg.TracingServiceName,
			ZipkinURL:   cfg.TracingZipkinURL,
		})
		if err != nil {
			return nil, err
		}
		return &tracing{tracer: tracer, cleanup: cleanup}, nil
	})

	do.Provide(i, func(i do.Injector) (*bus, error) {
		t, err := do.Invoke[*tracing](i)
		if err != nil {
			return nil, err
		}
		return &bus{pubsub.NewWatermillBridgeWithTracer(t.tracer)}, nil
	})

	do.Provide(i, func(i do.Injector) (*catalog.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return catalog.NewService(contentFs(cfg), cfg.CatalogLatency)
	})

	do.Provide(i, func(i do.Injector) (*verification.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return verification.NewService(verification.Options{
			TTL:         cfg.OTPTTL,
			MaxAttempts: cfg.OTPMaxAttempts,
			FixedCode:   cfg.OTPFixedCode,
		}), nil
	})

	do.Provide(i, func(i do.Injector) (domain.SMSSender, error) {
		return sms.NewSender(do.MustInvoke[*config.Config](i))
	})

	do.Provide(i, func(i do.Injector) (*accounts.MemoryStore, error) {
		return accounts.NewMemoryStore(), nil
	})

	do.Provide(i, func(i do.Injector) (*backend.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		codes, err := do.Invoke[*verification.Service](i)
		if err != nil {
			return nil, err
		}
		sender, err := do.Invoke[domain.SMSSender](i)
		if err != nil {
			return nil, fmt.Errorf("sms sender: %w", err)
		}
		b, err := do.Invoke[*bus](i)
		if err != nil {
			return nil, err
		}
		return backend.New(backend.Dependencies{
			Codes:     codes,
			SMS:       sender,
			Accounts:  do.MustInvoke[*accounts.MemoryStore](i),
			Publisher: b,
			Latency: backend.Latency{
				SendCode:   cfg.SendCodeLatency,
				VerifyCode: cfg.VerifyCodeLatency,
				Register:   cfg.RegisterLatency,
			},
		}), nil
	})

	do.Provide(i, func(i do.Injector) (*enrollment.Store, error) {
		cfg := do.MustInvoke[*config.Config](i)
		services, err := do.Invoke[*backend.Service](i)
		if err != nil {
			return nil, err
		}
		return enrollment.NewStore(services, enrollment.Options{CodeHint: cfg.OTPFixedCode}, cfg.FormTTL), nil
	})

	do.Provide(i, func(i do.Injector) (*rendering.UniversalRenderer, error) {
		return rendering.NewUniversalRenderer(), nil
	})

	do.Provide(i, func(i do.Injector) (*server.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		b, err := do.Invoke[*bus](i)
		if err != nil {
			return nil, err
		}
		cat, err := do.Invoke[*catalog.Service](i)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		forms, err := do.Invoke[*enrollment.Store](i)
		if err != nil {
			return nil, err
		}

		return server.New(server.Dependencies{
			Config:     cfg,
			Forms:      forms,
			Publisher:  b,
			Subscriber: b,
			Renderer:   do.MustInvoke[*rendering.UniversalRenderer](i),
			Modules: NewModules(Dependencies{
				Catalog:    cat,
				ContentDir: cfg.ContentDir,
				WatchDir:   cfg.ContentWatch,
			}),
		}), nil
	})
}

// contentFs returns the catalog source: CONTENT_DIR on disk when set,
// otherwise the content embedded in the binary.
func contentFs(cfg *config.Config) afero.Fs {
	if cfg.ContentDir != "" {
		slog.Info("Loading content from disk", "dir", cfg.ContentDir)
		return afero.NewBasePathFs(afero.NewOsFs(), cfg.ContentDir)
	}
	return &afero.FromIOFS{FS: web.Content()}
}
