package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/alphaprime/internal/catalog"
	"github.com/nfrund/alphaprime/internal/enrollment"
	"github.com/nfrund/alphaprime/internal/events"
	"github.com/nfrund/alphaprime/internal/pubsub"
)

// SiteHandler serves the home page, its modals and the form actions.
type SiteHandler struct {
	catalog   *catalog.Service
	forms     *enrollment.Store
	publisher pubsub.Publisher
}

// NewSiteHandler creates a new SiteHandler. publisher may be nil.
func NewSiteHandler(catalog *catalog.Service, forms *enrollment.Store, publisher pubsub.Publisher) *SiteHandler {
	return &SiteHandler{
		catalog:   catalog,
		forms:     forms,
		publisher: publisher,
	}
}

// WelcomeMessage is shown when a form succeeds.
func WelcomeMessage(name string) string {
	return fmt.Sprintf("Success! Welcome, %s.", name)
}

// isHTMX reports whether the request was made by htmx and expects a
// fragment rather than a full page.
func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// openForm creates a form owned by visitor. The form leaves the store when
// it succeeds or is cancelled; success is published on the bus.
func (h *SiteHandler) openForm(visitor string, kind enrollment.Kind) *enrollment.Form {
	var form *enrollment.Form
	hooks := enrollment.Hooks{
		OnSuccess: func(name string) {
			h.forms.Remove(form.ID())
			h.publish(func(ctx context.Context) error {
				return pubsub.Publish(ctx, h.publisher, events.EnrollmentSucceeded, visitor, events.FormCompleted{
					FormID: form.ID(),
					Kind:   string(kind),
					Name:   name,
					At:     time.Now(),
				})
			})
		},
		OnCancel: func() {
			h.forms.Remove(form.ID())
		},
	}
	form = h.forms.Create(visitor, kind, hooks)
	slog.Debug("Form opened", "form_id", form.ID(), "kind", kind)
	return form
}

func (h *SiteHandler) publishCancelled(visitor string, form *enrollment.Form, from enrollment.State) {
	h.publish(func(ctx context.Context) error {
		return pubsub.Publish(ctx, h.publisher, events.EnrollmentCancelled, visitor, events.FormCancelled{
			FormID: form.ID(),
			Kind:   string(form.Kind()),
			State:  from.String(),
			At:     time.Now(),
		})
	})
}

func (h *SiteHandler) publish(fn func(ctx context.Context) error) {
	if h.publisher == nil {
		return
	}
	if err := fn(context.Background()); err != nil {
		slog.Error("Failed to publish form event", "error", err)
	}
}
