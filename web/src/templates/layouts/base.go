package layouts

import (
	"github.com/nfrund/alphaprime/internal/view"
	"github.com/nfrund/alphaprime/web/src/templates/partials"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Base is the document shell shared by every full page.
func Base(title string, flash view.FlashData, content ...g.Node) g.Node {
	return h.Doctype(
		h.HTML(
			h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(CalculateTitle(title))),
				h.Script(h.Src("https://cdn.tailwindcss.com")),
				h.Script(h.Src(htmxSrc), h.Defer()),
				h.Script(h.Src("/static/js/code-input.js"), h.Defer()),
				h.Link(h.Rel("stylesheet"), h.Href("/static/css/site.css")),
			),
			h.Body(
				h.Class("min-h-screen flex flex-col relative overflow-x-hidden bg-[#f4fbfb] text-gray-800"),
				partials.Flash(flash),
				g.Group(content),
			),
		),
	)
}
