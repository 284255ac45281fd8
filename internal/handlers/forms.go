package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/alphaprime/internal/enrollment"
	"github.com/nfrund/alphaprime/internal/middleware"
	"github.com/nfrund/alphaprime/internal/view"
	"github.com/nfrund/alphaprime/web/src/templates/components"
	"github.com/nfrund/alphaprime/web/src/templates/partials"
	g "maragu.dev/gomponents"
)

const msgFormExpired = "This form has expired. Please start again."

// DetailsPost sets the draft and requests a code (POST /forms/:id/details).
func (h *SiteHandler) DetailsPost(c echo.Context) error {
	form, visitor, err := h.loadForm(c)
	if err != nil {
		return h.formGone(c, err)
	}

	var req DetailsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission.")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission.")
	}

	err = form.SetDraft(enrollment.Draft{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err == nil {
		err = form.Submit(c.Request().Context())
	}
	return h.respond(c, visitor, form, err)
}

// DigitPost applies a keystroke to a code slot (POST /forms/:id/code/:slot).
func (h *SiteHandler) DigitPost(c echo.Context) error {
	form, visitor, err := h.loadForm(c)
	if err != nil {
		return h.formGone(c, err)
	}

	var req DigitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid slot.")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid slot.")
	}

	err = form.TypeDigit(c.Request().Context(), req.Slot, req.Digit)
	return h.respond(c, visitor, form, err)
}

// BackspacePost handles a backspace in an empty slot
// (POST /forms/:id/code/:slot/backspace).
func (h *SiteHandler) BackspacePost(c echo.Context) error {
	form, visitor, err := h.loadForm(c)
	if err != nil {
		return h.formGone(c, err)
	}

	var req SlotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid slot.")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid slot.")
	}

	return h.respond(c, visitor, form, form.Backspace(req.Slot))
}

// PastePost fills the code from clipboard text (POST /forms/:id/code/paste).
func (h *SiteHandler) PastePost(c echo.Context) error {
	form, visitor, err := h.loadForm(c)
	if err != nil {
		return h.formGone(c, err)
	}

	var req PasteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid paste.")
	}

	return h.respond(c, visitor, form, form.Paste(c.Request().Context(), req.Text))
}

// BackPost returns to the details step (POST /forms/:id/back).
func (h *SiteHandler) BackPost(c echo.Context) error {
	form, visitor, err := h.loadForm(c)
	if err != nil {
		return h.formGone(c, err)
	}
	return h.respond(c, visitor, form, form.Back())
}

// CancelPost closes the form and discards the draft
// (POST /forms/:id/cancel).
func (h *SiteHandler) CancelPost(c echo.Context) error {
	form, visitor, err := h.loadForm(c)
	if err != nil {
		if errors.Is(err, enrollment.ErrFormNotFound) {
			return h.closeModal(c)
		}
		return err
	}

	from := form.State()
	err = form.Cancel()
	if err == nil && from != enrollment.StateCancelled {
		h.publishCancelled(visitor, form, from)
	}
	return h.respond(c, visitor, form, err)
}

func (h *SiteHandler) loadForm(c echo.Context) (*enrollment.Form, string, error) {
	visitor, err := view.VisitorID(c)
	if err != nil {
		return nil, "", err
	}
	form, err := h.forms.Get(c.Param("id"), visitor)
	if err != nil {
		return nil, visitor, err
	}
	return form, visitor, nil
}

// respond renders the form after an operation. Operation errors are already
// reflected in the form's view, so they are logged rather than returned.
func (h *SiteHandler) respond(c echo.Context, visitor string, form *enrollment.Form, opErr error) error {
	logger := middleware.FromContext(c.Request().Context()).With("form_id", form.ID(), "kind", form.Kind(), "visitor", visitor)
	v := form.View()

	switch {
	case opErr == nil:
	case errors.Is(opErr, enrollment.ErrValidation):
		logger.Debug("Form details invalid", "fields", len(v.FieldErrors))
	case errors.Is(opErr, enrollment.ErrBusy), errors.Is(opErr, enrollment.ErrInvalidState):
		logger.Debug("Form action ignored", "state", v.State, "reason", opErr)
	default:
		logger.Error("Form action failed", "state", v.State, "error", opErr)
	}

	if !isHTMX(c) {
		switch v.State {
		case enrollment.StateSucceeded:
			view.SetFlashSuccess(c, WelcomeMessage(v.SuccessName))
			return c.Redirect(http.StatusSeeOther, "/")
		case enrollment.StateCancelled:
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return c.Redirect(http.StatusSeeOther, "/?form="+v.ID)
	}

	nodes := g.Group{components.ModalHost(view.FormModal(v))}
	if v.State == enrollment.StateSucceeded {
		logger.Info("Form succeeded")
		nodes = append(nodes, partials.Toast("success", WelcomeMessage(v.SuccessName)))
	}
	return c.Render(http.StatusOK, "", nodes)
}

// formGone answers an action on a form that no longer exists for this
// visitor by closing the modal with a message.
func (h *SiteHandler) formGone(c echo.Context, err error) error {
	if !errors.Is(err, enrollment.ErrFormNotFound) {
		return err
	}
	if !isHTMX(c) {
		view.SetFlashError(c, msgFormExpired)
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, "", g.Group{
		components.ModalHost(view.NoModal{}),
		partials.Toast("error", msgFormExpired),
	})
}

func (h *SiteHandler) closeModal(c echo.Context) error {
	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, "", components.ModalHost(view.NoModal{}))
}
