package partials

import (
	"github.com/nfrund/alphaprime/internal/view"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// FlashID is the element that receives flash messages and toasts.
const FlashID = "flash"

// Flash renders the messages carried over from the previous request.
func Flash(data view.FlashData) g.Node {
	return Div(
		ID(FlashID),
		Class("fixed top-20 inset-x-0 z-[60] flex flex-col items-center gap-2 pointer-events-none"),
		g.Map(data.Success, func(msg string) g.Node { return toast("success", msg) }),
		g.Map(data.Error, func(msg string) g.Node { return toast("error", msg) }),
	)
}

// Toast appends a message to the flash area from an htmx response.
func Toast(kind, message string) g.Node {
	return Div(
		hx.SwapOOB("beforeend:#"+FlashID),
		toast(kind, message),
	)
}

func toast(kind, message string) g.Node {
	classes := "toast pointer-events-auto px-6 py-3 rounded-2xl shadow-xl font-semibold "
	if kind == "error" {
		classes += "bg-red-600 text-white"
	} else {
		classes += "bg-[#0a585b] text-white"
	}
	return Div(Class(classes), Role("status"), g.Text(message))
}
