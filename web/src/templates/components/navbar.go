package components

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sections are the page anchors linked from the navigation, in order.
var Sections = []string{"home", "courses", "blog", "career", "contact"}

var titleCaser = cases.Title(language.English)

// SectionLabel is the navigation label for a section id.
func SectionLabel(id string) string {
	return titleCaser.String(id)
}

// Navbar renders the sticky header with section links and the enroll and
// register buttons.
func Navbar() g.Node {
	return Header(
		Class("sticky top-0 z-50 bg-white/90 backdrop-blur-md shadow-sm py-3 border-b border-[#0a585b]/5"),
		Div(
			Class("max-w-7xl mx-auto px-6 flex justify-between items-center"),
			A(
				Href("#home"),
				Class("flex items-center gap-3"),
				Div(Class("h-10 w-10 bg-[#0a585b] rounded-xl flex items-center justify-center text-white font-bold text-xl"), g.Text("AP")),
				Div(
					Class("flex flex-col"),
					Span(Class("font-bold text-xl tracking-wider text-[#0a585b] leading-none"), g.Text("ALPHAPRIME")),
					Span(Class("text-[10px] uppercase tracking-[0.2em] text-[#0f766e] font-medium mt-1"), g.Text("Learn · Trade · Grow")),
				),
			),
			Nav(
				Class("flex items-center gap-6"),
				Div(
					Class("hidden md:flex items-center gap-8"),
					g.Map(Sections, func(id string) g.Node {
						return A(Href("#"+id), Class("text-[#0a585b] font-medium hover:text-[#0f766e]"), g.Text(SectionLabel(id)))
					}),
				),
				openModalButton(Outline, "/modal/enroll", "Enroll Now"),
				openModalButton(Primary, "/modal/register", "Register"),
			),
		),
	)
}

func openModalButton(variant Variant, url, label string) g.Node {
	return Btn(variant,
		Type("button"),
		hx.Get(url),
		hx.Target("#"+ModalHostID),
		hx.Swap("outerHTML"),
		g.Text(label),
	)
}
