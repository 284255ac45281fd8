// Package content owns the site catalog: it shares the catalog service,
// serves it as JSON and reloads it when the content directory changes.
package content

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/alphaprime/internal/catalog"
	"github.com/nfrund/alphaprime/internal/domain"
	"github.com/nfrund/alphaprime/internal/module"
	"github.com/nfrund/alphaprime/internal/registry"
	"golang.org/x/sync/errgroup"
)

// Dependencies holds the services required by the content module.
type Dependencies struct {
	Catalog *catalog.Service
	// Dir is the on-disk content directory. Empty means embedded content,
	// which is never watched.
	Dir   string
	Watch bool
}

// Response is the JSON document served at GET /catalog.
type Response struct {
	Courses []domain.Course     `json:"courses"`
	Posts   []domain.BlogPost   `json:"posts"`
	Career  []domain.CareerItem `json:"career"`
}

type Module struct {
	module.BaseModule
	catalog *catalog.Service
	dir     string
	watch   bool
	watcher *catalog.Watcher
}

func New(deps Dependencies) *Module {
	return &Module{
		catalog: deps.Catalog,
		dir:     deps.Dir,
		watch:   deps.Watch,
	}
}

func (m *Module) Name() string {
	return "content"
}

func (m *Module) Register(reg *registry.Registry) error {
	registry.Set(reg, registry.CatalogServiceKey, m.catalog)
	return nil
}

func (m *Module) Boot(ctx context.Context, group *echo.Group, reg *registry.Registry) error {
	group.GET("/catalog", m.handleCatalog)

	if !m.watch {
		return nil
	}
	if m.dir == "" {
		slog.Info("Content watch requested without CONTENT_DIR, serving embedded content only")
		return nil
	}

	// Reloads are announced on the bus when one is registered.
	publisher, _ := registry.Get(reg, registry.PublisherKey)
	m.watcher = catalog.NewWatcher(m.catalog, m.dir, publisher)
	return m.watcher.Start(ctx)
}

func (m *Module) Shutdown(ctx context.Context) error {
	if m.watcher != nil {
		m.watcher.Stop()
	}
	return nil
}

func (m *Module) handleCatalog(c echo.Context) error {
	ctx := c.Request().Context()
	var resp Response

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		resp.Courses, err = m.catalog.FetchCourses(gctx)
		return err
	})
	g.Go(func() (err error) {
		resp.Posts, err = m.catalog.FetchBlogPosts(gctx)
		return err
	})
	g.Go(func() (err error) {
		resp.Career, err = m.catalog.FetchCareerItems(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "Failed to load catalog", "error", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "catalog unavailable")
	}
	return c.JSON(http.StatusOK, resp)
}
