package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/alphaprime/internal/domain"
	"github.com/nfrund/alphaprime/internal/enrollment"
	"github.com/nfrund/alphaprime/internal/view"
	"github.com/nfrund/alphaprime/web/src/templates/components"
)

// ModalFormGet opens a new registration or enrollment form
// (GET /modal/enroll, GET /modal/register).
func (h *SiteHandler) ModalFormGet(kind enrollment.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !isHTMX(c) {
			return c.Redirect(http.StatusSeeOther, "/?modal="+url.QueryEscape(string(kind)))
		}
		visitor, err := view.VisitorID(c)
		if err != nil {
			return err
		}
		form := h.openForm(visitor, kind)
		return c.Render(http.StatusOK, "", components.ModalHost(view.FormModal(form.View())))
	}
}

// ModalBlogGet shows one post (GET /modal/blog/:id).
func (h *SiteHandler) ModalBlogGet(c echo.Context) error {
	id := c.Param("id")
	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/?modal=blog&post="+url.QueryEscape(id))
	}
	post, err := h.catalog.FindPost(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found.")
		}
		return err
	}
	return c.Render(http.StatusOK, "", components.ModalHost(view.BlogModal{Post: post}))
}

// ModalCloseGet empties the modal host (GET /modal/close).
func (h *SiteHandler) ModalCloseGet(c echo.Context) error {
	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, "", components.ModalHost(view.NoModal{}))
}
