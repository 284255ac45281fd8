// Package otp implements the segmented one-time-code input: four single-digit
// slots with focus tracking, paste handling and a completion callback.
package otp

import "strings"

// Length is the number of slots in a code.
const Length = 4

// Input holds the state of one segmented code widget. It is not safe for
// concurrent use; the owning form serialises access.
type Input struct {
	slots      [Length]string
	focus      int
	disabled   bool
	onComplete func(code string)
}

// NewInput returns an empty input focused on the first slot. onComplete may be
// nil.
func NewInput(onComplete func(code string)) *Input {
	return &Input{onComplete: onComplete}
}

// OnComplete replaces the completion callback.
func (in *Input) OnComplete(fn func(code string)) {
	in.onComplete = fn
}

// Type applies a change to a single slot. text must consist only of decimal
// digits; anything else is rejected and nothing changes. Only the last
// character is kept. An empty text clears the slot and keeps focus on it. A
// non-empty value moves focus to the next slot. It reports whether the
// change was applied.
func (in *Input) Type(slot int, text string) bool {
	if in.disabled || !validSlot(slot) || !allDigits(text) {
		return false
	}
	if text == "" {
		in.slots[slot] = ""
		in.focus = slot
		return true
	}

	in.slots[slot] = text[len(text)-1:]
	if slot < Length-1 {
		in.focus = slot + 1
	}
	in.fireIfComplete()
	return true
}

// Backspace handles a backspace keypress in slot. Pressing it in an empty slot
// other than the first moves focus back one slot; values are never altered
// here, deleting a digit is a Type with empty text.
func (in *Input) Backspace(slot int) bool {
	if in.disabled || !validSlot(slot) {
		return false
	}
	if in.slots[slot] == "" && slot > 0 {
		in.focus = slot - 1
		return true
	}
	return false
}

// Paste fills slots from clipboard text. The text is truncated to Length
// characters; if any of those is not a digit the whole paste is rejected.
// Slots past the pasted prefix keep their values. Focus is left unchanged.
func (in *Input) Paste(text string) bool {
	if in.disabled {
		return false
	}
	if len(text) > Length {
		text = text[:Length]
	}
	if text == "" || !allDigits(text) {
		return false
	}

	for i := 0; i < len(text); i++ {
		in.slots[i] = text[i : i+1]
	}
	in.fireIfComplete()
	return true
}

// Focus returns the index of the focused slot.
func (in *Input) Focus() int {
	return in.focus
}

// FocusSlot moves focus to slot k. Out of range values are ignored.
func (in *Input) FocusSlot(k int) {
	if validSlot(k) && !in.disabled {
		in.focus = k
	}
}

// Slots returns a copy of the slot values.
func (in *Input) Slots() [Length]string {
	return in.slots
}

// Code joins the slot values. It is only a full code when Complete is true.
func (in *Input) Code() string {
	return strings.Join(in.slots[:], "")
}

// Complete reports whether every slot holds a digit.
func (in *Input) Complete() bool {
	for _, s := range in.slots {
		if s == "" {
			return false
		}
	}
	return true
}

// SetDisabled makes every slot inert while true.
func (in *Input) SetDisabled(disabled bool) {
	in.disabled = disabled
}

// Disabled reports whether the input is inert.
func (in *Input) Disabled() bool {
	return in.disabled
}

// Reset clears all slots and focuses the first one.
func (in *Input) Reset() {
	in.slots = [Length]string{}
	in.focus = 0
}

func (in *Input) fireIfComplete() {
	if in.onComplete != nil && in.Complete() {
		in.onComplete(in.Code())
	}
}

func validSlot(i int) bool {
	return i >= 0 && i < Length
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
