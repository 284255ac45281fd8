package enrollment

import "fmt"

// Kind selects which flow a form runs.
type Kind string

const (
	KindRegister Kind = "register"
	KindEnroll   Kind = "enroll"
)

// ParseKind converts a route or query value into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindRegister, KindEnroll:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown form kind %q", s)
	}
}

// Title is the heading shown above the form.
func (k Kind) Title() string {
	if k == KindRegister {
		return "Create Account"
	}
	return "Enroll in Course"
}

// RequiresPassword reports whether the details step collects a password.
func (k Kind) RequiresPassword() bool {
	return k == KindRegister
}

// State is a step of the form's state machine.
type State int

const (
	StateDetails State = iota
	StateSending
	StateAwaitingCode
	StateVerifying
	StateSucceeded
	StateCancelled
)

var stateNames = [...]string{
	StateDetails:      "details",
	StateSending:      "sending",
	StateAwaitingCode: "awaiting_code",
	StateVerifying:    "verifying",
	StateSucceeded:    "succeeded",
	StateCancelled:    "cancelled",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Busy reports whether a backend call is outstanding.
func (s State) Busy() bool {
	return s == StateSending || s == StateVerifying
}

// Terminal reports whether the form can no longer change.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateCancelled
}

// OnCodeStep reports whether the code entry view is shown.
func (s State) OnCodeStep() bool {
	return s == StateAwaitingCode || s == StateVerifying
}
