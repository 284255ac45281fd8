// Package audit records enrollment, verification and account events
// published on the bus and exposes the counts.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/alphaprime/internal/events"
	"github.com/nfrund/alphaprime/internal/module"
	"github.com/nfrund/alphaprime/internal/pubsub"
	"github.com/nfrund/alphaprime/internal/registry"
)

type Module struct {
	module.BaseModule
	trail  *Trail
	cancel context.CancelFunc
}

func New() *Module {
	return &Module{
		trail: NewTrail(),
	}
}

func (m *Module) Name() string {
	return "audit"
}

// Boot subscribes to the audited topics and mounts GET /audit on group.
func (m *Module) Boot(ctx context.Context, group *echo.Group, reg *registry.Registry) error {
	subscriber, ok := registry.Get(reg, registry.SubscriberKey)
	if !ok || subscriber == nil {
		return fmt.Errorf("audit: no subscriber registered")
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	subs := []func(context.Context) error{
		func(ctx context.Context) error {
			return pubsub.Subscribe(ctx, subscriber, events.EnrollmentSucceeded, func(ctx context.Context, p events.FormCompleted, msg pubsub.Message) error {
				m.record(msg.Topic, fmt.Sprintf("%s form %s completed", p.Kind, p.FormID), p.At)
				return nil
			})
		},
		func(ctx context.Context) error {
			return pubsub.Subscribe(ctx, subscriber, events.EnrollmentCancelled, func(ctx context.Context, p events.FormCancelled, msg pubsub.Message) error {
				m.record(msg.Topic, fmt.Sprintf("%s form %s cancelled in %s", p.Kind, p.FormID, p.State), p.At)
				return nil
			})
		},
		func(ctx context.Context) error {
			return pubsub.Subscribe(ctx, subscriber, events.CodeSent, func(ctx context.Context, p events.CodeDispatched, msg pubsub.Message) error {
				m.record(msg.Topic, "code sent to "+p.Phone, time.Now())
				return nil
			})
		},
		func(ctx context.Context) error {
			return pubsub.Subscribe(ctx, subscriber, events.AccountCreated, func(ctx context.Context, p events.AccountRegistered, msg pubsub.Message) error {
				m.record(msg.Topic, "account "+p.AccountID+" registered", p.At)
				return nil
			})
		},
		func(ctx context.Context) error {
			return pubsub.Subscribe(ctx, subscriber, events.ContentReloaded, func(ctx context.Context, p events.CatalogReloaded, msg pubsub.Message) error {
				m.record(msg.Topic, fmt.Sprintf("catalog reloaded with %d posts", p.Posts), p.At)
				return nil
			})
		},
	}
	for _, sub := range subs {
		if err := sub(ctx); err != nil {
			cancel()
			return fmt.Errorf("audit: subscribe: %w", err)
		}
	}

	group.GET("/audit", m.handleStats)
	slog.Info("Audit module booted")
	return nil
}

func (m *Module) Shutdown(ctx context.Context) error {
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}

// Trail returns the module's event trail.
func (m *Module) Trail() *Trail {
	return m.trail
}

func (m *Module) record(topic, summary string, at time.Time) {
	slog.Debug("Audit event", "topic", topic, "summary", summary)
	m.trail.Record(Entry{Topic: topic, Summary: summary, At: at})
}

func (m *Module) handleStats(c echo.Context) error {
	return c.JSON(http.StatusOK, m.trail.Stats())
}
