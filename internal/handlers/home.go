package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/alphaprime/internal/domain"
	"github.com/nfrund/alphaprime/internal/enrollment"
	"github.com/nfrund/alphaprime/internal/middleware"
	"github.com/nfrund/alphaprime/internal/view"
	"github.com/nfrund/alphaprime/web/src/templates/layouts"
	"github.com/nfrund/alphaprime/web/src/templates/pages"
	"golang.org/x/sync/errgroup"
)

// HomeGet renders the full page. The catalog is fetched concurrently. A
// modal can be opened server side with ?modal=enroll|register,
// ?modal=blog&post=<id> or ?form=<id> for a form the visitor already has.
func (h *SiteHandler) HomeGet(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	visitor, err := view.VisitorID(c)
	if err != nil {
		return err
	}

	var data pages.HomeData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Courses, err = h.catalog.FetchCourses(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Posts, err = h.catalog.FetchBlogPosts(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Career, err = h.catalog.FetchCareerItems(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("Failed to load catalog", "error", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Content is temporarily unavailable.")
	}

	data.Modal = h.modalFromQuery(c, visitor, logger)

	page := layouts.Base("Home", view.GetFlashData(c), pages.Home(data))
	return c.Render(http.StatusOK, "", page)
}

func (h *SiteHandler) modalFromQuery(c echo.Context, visitor string, logger *slog.Logger) view.Modal {
	if id := c.QueryParam("form"); id != "" {
		form, err := h.forms.Get(id, visitor)
		if err != nil {
			logger.Debug("Form from query not available", "form_id", id, "error", err)
			return view.NoModal{}
		}
		return view.FormModal(form.View())
	}

	switch c.QueryParam("modal") {
	case string(enrollment.KindEnroll), string(enrollment.KindRegister):
		kind, _ := enrollment.ParseKind(c.QueryParam("modal"))
		return view.FormModal(h.openForm(visitor, kind).View())
	case "blog":
		post, err := h.catalog.FindPost(c.QueryParam("post"))
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				logger.Error("Failed to find post", "error", err)
			}
			return view.NoModal{}
		}
		return view.BlogModal{Post: post}
	}
	return view.NoModal{}
}
