package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/alphaprime/internal/enrollment"
	"github.com/nfrund/alphaprime/internal/handlers"
	"github.com/nfrund/alphaprime/internal/middleware"
)

// registerRoutes sets up the page, modal and form routes.
func (s *Server) registerRoutes(site *handlers.SiteHandler) {
	rateLimiter := middleware.RateLimiter(s.Cfg.RateLimitPerMinute)

	s.E.GET("/", site.HomeGet)

	s.E.GET("/modal/enroll", site.ModalFormGet(enrollment.KindEnroll))
	s.E.GET("/modal/register", site.ModalFormGet(enrollment.KindRegister))
	s.E.GET("/modal/blog/:id", site.ModalBlogGet)
	s.E.GET("/modal/close", site.ModalCloseGet)

	forms := s.E.Group("/forms/:id")
	forms.POST("/details", site.DetailsPost, rateLimiter)
	forms.POST("/code/paste", site.PastePost)
	forms.POST("/code/:slot", site.DigitPost)
	forms.POST("/code/:slot/backspace", site.BackspacePost)
	forms.POST("/back", site.BackPost)
	forms.POST("/cancel", site.CancelPost)

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}
