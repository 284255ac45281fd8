package components

import (
	"fmt"
	"strconv"

	"github.com/nfrund/alphaprime/internal/enrollment"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// CodeInput renders the segmented one-time code input. Each slot posts its
// value on input; a backspace in an empty slot and a paste anywhere in the
// group are posted separately. The focused slot carries autofocus so htmx
// focuses it after the swap.
func CodeInput(v enrollment.View) g.Node {
	slots := make([]g.Node, 0, len(v.Slots))
	for i, value := range v.Slots {
		slots = append(slots, codeSlot(v, i, value))
	}

	return Div(
		ID("code-input"),
		Class("flex gap-3 justify-center my-4"),
		Role("group"),
		Aria("label", "Verification code"),
		g.If(!v.CodeLocked, g.Group{
			hx.Post(FormURL(v.ID, "code", "paste")),
			hx.Trigger("paste"),
			hx.Vals(`js:{text: event.clipboardData.getData("text")}`),
			hx.Target("#" + ModalHostID),
			hx.Swap("outerHTML"),
		}),
		g.Group(slots),
	)
}

func codeSlot(v enrollment.View, i int, value string) g.Node {
	slot := strconv.Itoa(i)
	locked := v.CodeLocked
	return Span(
		g.If(!locked, g.Group{
			hx.Post(FormURL(v.ID, "code", slot, "backspace")),
			hx.Trigger("keydown[key=='Backspace'&&target.value=='']"),
			hx.Target("#" + ModalHostID),
			hx.Swap("outerHTML"),
		}),
		Input(
			ID("code-slot-"+slot),
			Class("code-slot w-14 h-16 text-center text-2xl font-bold rounded-xl border-2 border-[#0a585b]/30 focus:border-[#0a585b] outline-none disabled:bg-gray-100"),
			Type("text"),
			Name("digit"),
			g.Attr("inputmode", "numeric"),
			g.Attr("pattern", "[0-9]*"),
			AutoComplete("one-time-code"),
			MaxLength("1"),
			Aria("label", fmt.Sprintf("Digit %d", i+1)),
			g.If(value != "", Value(value)),
			g.If(locked, Disabled()),
			g.If(!locked && i == v.Focus, AutoFocus()),
			g.If(!locked, g.Group{
				hx.Post(FormURL(v.ID, "code", slot)),
				hx.Trigger("input"),
				hx.Target("#" + ModalHostID),
				hx.Swap("outerHTML"),
			}),
		),
	)
}
