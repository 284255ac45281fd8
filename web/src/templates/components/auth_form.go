package components

import (
	"fmt"

	"github.com/nfrund/alphaprime/internal/enrollment"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// FormURL builds the route for an action on form id.
func FormURL(id string, parts ...string) string {
	url := "/forms/" + id
	for _, p := range parts {
		url += "/" + p
	}
	return url
}

// AuthForm renders the details or code step of a registration or
// enrollment form.
func AuthForm(v enrollment.View) g.Node {
	if v.State.OnCodeStep() {
		return codeStep(v)
	}
	return detailsStep(v)
}

func detailsStep(v enrollment.View) g.Node {
	sending := v.State == enrollment.StateSending
	return Form(
		ID("details-form"),
		Class("flex flex-col gap-4"),
		Action(FormURL(v.ID, "details")),
		Method("post"),
		hx.Post(FormURL(v.ID, "details")),
		hx.Target("#"+ModalHostID),
		hx.Swap("outerHTML"),
		g.Attr("hx-disabled-elt", "find button"),
		textField("name", "Full Name", "text", "e.g. John Doe", v.Name, v.FieldError("name")),
		textField("email", "Email", "email", "john@example.com", v.Email, v.FieldError("email")),
		textField("phone", "Phone Number", "tel", "+1 234 567 890", v.Phone, v.FieldError("phone")),
		g.If(v.Kind.RequiresPassword(),
			textField("password", "Password", "password", "••••••••", "", v.FieldError("password")),
		),
		formMessage(v.Message),
		Div(
			Class("flex gap-3 mt-4 justify-end"),
			Btn(Ghost,
				Type("button"),
				hx.Post(FormURL(v.ID, "cancel")),
				hx.Target("#"+ModalHostID),
				hx.Swap("outerHTML"),
				g.Text("Cancel"),
			),
			Btn(Primary,
				Type("submit"),
				g.If(sending, Disabled()),
				Span(Class("when-idle"), g.Text("Send OTP")),
				Span(Class("when-busy"), g.Text("Sending...")),
			),
		),
	)
}

func textField(name, label, kind, placeholder, value, errMsg string) g.Node {
	id := "field-" + name
	inputClass := "w-full px-4 py-3 rounded-xl border outline-none focus:border-[#0a585b] "
	if errMsg != "" {
		inputClass += "border-red-400"
	} else {
		inputClass += "border-[#0a585b]/30"
	}
	return Div(
		Class("flex flex-col gap-2"),
		Label(For(id), Class("text-sm font-semibold ml-1"), g.Text(label)),
		Input(
			ID(id),
			Name(name),
			Type(kind),
			Placeholder(placeholder),
			g.If(value != "", Value(value)),
			Required(),
			Class(inputClass),
			g.If(errMsg != "", Aria("invalid", "true")),
		),
		g.If(errMsg != "", P(Class("text-red-500 text-xs ml-1"), g.Text(errMsg))),
	)
}

func formMessage(msg string) g.Node {
	if msg == "" {
		return nil
	}
	return P(Class("form-message text-red-500 text-sm mt-2"), Role("alert"), g.Text(msg))
}

func codeStep(v enrollment.View) g.Node {
	verifying := v.State == enrollment.StateVerifying
	return Div(
		Class("text-center"),
		P(Class("text-sm text-gray-600 mb-2"), g.Text(fmt.Sprintf("Enter the %d-digit code sent to %s", len(v.Slots), v.Phone))),
		g.If(v.Hint != "", P(Class("text-xs text-[#0a585b] font-mono mb-4"), g.Textf("(Hint: Use %s)", v.Hint))),
		CodeInput(v),
		formMessage(v.Message),
		P(Class("verifying text-sm text-[#0a585b] mt-2 animate-pulse"), g.Text("Verifying...")),
		Div(
			Class("flex gap-3 mt-6 justify-center"),
			Btn(Ghost,
				Type("button"),
				g.If(verifying, Disabled()),
				hx.Post(FormURL(v.ID, "back")),
				hx.Target("#"+ModalHostID),
				hx.Swap("outerHTML"),
				g.Text("Back"),
			),
		),
	)
}
