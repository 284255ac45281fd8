package components

import (
	"github.com/nfrund/alphaprime/internal/view"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// ModalHostID is the element every modal response replaces.
const ModalHostID = "modal-host"

// ModalHost renders the page-level host for m. An empty host is still
// rendered so later responses have a target.
func ModalHost(m view.Modal) g.Node {
	switch m := m.(type) {
	case view.EnrollModal:
		return host(dialog(m.Form.Kind.Title(), formCloseAttrs(m.Form.ID), AuthForm(m.Form)))
	case view.RegisterModal:
		return host(dialog(m.Form.Kind.Title(), formCloseAttrs(m.Form.ID), AuthForm(m.Form)))
	case view.BlogModal:
		return host(dialog(m.Post.Title, blogCloseAttrs(), BlogDetail(m.Post)))
	default:
		return host()
	}
}

func host(children ...g.Node) g.Node {
	return Div(ID(ModalHostID), g.Group(children))
}

// dialog draws the overlay and panel. closeAttrs wire the close button and
// the backdrop.
func dialog(title string, closeAttrs g.Node, body g.Node) g.Node {
	return Div(
		Class("fixed inset-0 z-[70] flex items-center justify-center p-4"),
		Role("dialog"),
		Aria("modal", "true"),
		Aria("label", title),
		Div(Class("modal-backdrop absolute inset-0 bg-[#0a585b]/40 backdrop-blur-sm"), closeAttrs),
		Div(
			Class("modal-panel relative bg-white rounded-3xl shadow-2xl w-full max-w-lg max-h-[90vh] overflow-y-auto p-8"),
			Div(
				Class("flex justify-between items-center mb-6"),
				H2(Class("text-2xl font-bold text-[#0a585b]"), g.Text(title)),
				Button(
					Type("button"),
					Class("text-gray-400 hover:text-[#0a585b] text-2xl leading-none"),
					Aria("label", "Close"),
					closeAttrs,
					g.Text("×"),
				),
			),
			body,
		),
	)
}

func formCloseAttrs(formID string) g.Node {
	return g.Group{
		hx.Post(FormURL(formID, "cancel")),
		hx.Target("#" + ModalHostID),
		hx.Swap("outerHTML"),
	}
}

func blogCloseAttrs() g.Node {
	return g.Group{
		hx.Get("/modal/close"),
		hx.Target("#" + ModalHostID),
		hx.Swap("outerHTML"),
	}
}
