package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Variant selects a button style.
type Variant string

const (
	Primary Variant = "primary"
	Outline Variant = "outline"
	Ghost   Variant = "ghost"
)

var variantClasses = map[Variant]string{
	Primary: "bg-[#0a585b] text-white hover:bg-[#0f766e] shadow-md",
	Outline: "border-2 border-[#0a585b] text-[#0a585b] hover:bg-[#0a585b] hover:text-white",
	Ghost:   "text-[#0a585b] hover:bg-[#0a585b]/10",
}

// Btn renders a styled button. Extra attributes and children follow.
func Btn(variant Variant, children ...g.Node) g.Node {
	return Button(
		Class("px-6 py-2.5 rounded-xl font-semibold transition-all duration-200 disabled:opacity-50 disabled:cursor-not-allowed "+variantClasses[variant]),
		g.Group(children),
	)
}
