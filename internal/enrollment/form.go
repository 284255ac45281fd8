// Package enrollment implements the two-step registration and enrollment
// form: details entry, then a one-time code sent to the visitor's phone.
package enrollment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nfrund/alphaprime/internal/domain"
	"github.com/nfrund/alphaprime/internal/otp"
)

const (
	msgSendFailed     = "We couldn't send the code. Please try again."
	msgInvalidCode    = "Invalid OTP."
	msgVerifyFailed   = "Verification failed."
	msgCodeUnusable   = "This code can no longer be used. Please request a new one."
	msgRegisterFailed = "Registration failed. Please go back and try again."
	msgAccountExists  = "An account with this email already exists."
)

// Dispatch describes a code that was sent. It never carries the code itself.
type Dispatch struct {
	ID        string
	ExpiresAt time.Time
}

// Services are the backend calls the form depends on.
type Services interface {
	SendCode(ctx context.Context, phone string) (Dispatch, error)
	VerifyCode(ctx context.Context, phone, code string) (bool, error)
	Register(ctx context.Context, draft Draft) error
}

// Hooks are notified when the form reaches a terminal state. Each fires at
// most once per form.
type Hooks struct {
	OnSuccess func(name string)
	OnCancel  func()
}

// Options tune messages shown by the form.
type Options struct {
	// CodeHint is appended to the wrong-code message and shown on the code
	// step when a fixed test code is in use.
	CodeHint string
}

// Form is one open registration or enrollment dialog. Methods are safe for
// concurrent use; while a backend call is outstanding every mutating method
// returns ErrBusy.
type Form struct {
	mu sync.Mutex

	id       string
	kind     Kind
	state    State
	draft    Draft
	code     *otp.Input
	dispatch Dispatch

	fieldErrors map[string]string
	message     string
	successName string

	// generation is bumped whenever the form leaves a busy state by a path
	// other than the call's own completion, so late results can be dropped.
	generation uint64
	completed  string

	services Services
	hooks    Hooks
	opts     Options
}

// New creates a form in the details step with an empty draft.
func New(id string, kind Kind, services Services, hooks Hooks, opts Options) *Form {
	f := &Form{
		id:       id,
		kind:     kind,
		state:    StateDetails,
		draft:    Draft{Kind: kind},
		services: services,
		hooks:    hooks,
		opts:     opts,
	}
	f.code = otp.NewInput(func(code string) { f.completed = code })
	return f
}

// ID returns the form identifier.
func (f *Form) ID() string { return f.id }

// Kind returns the flow the form runs.
func (f *Form) Kind() Kind { return f.kind }

// State returns the current state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// SetField updates one draft field. Only allowed on the details step.
func (f *Form) SetField(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkState(StateDetails); err != nil {
		return err
	}
	return f.draft.Set(field, value)
}

// SetDraft replaces the name, email, phone and password fields at once.
func (f *Form) SetDraft(d Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkState(StateDetails); err != nil {
		return err
	}
	d.Kind = f.kind
	f.draft = d
	return nil
}

// Submit validates the draft and asks for a code to be sent. Invalid drafts
// stay on the details step and return a *ValidationError without calling the
// backend. A failed send returns to the details step with a generic message.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if err := f.checkState(StateDetails); err != nil {
		f.mu.Unlock()
		return err
	}

	f.draft.Normalize()
	f.message = ""
	if err := f.draft.Validate(); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			f.fieldErrors = verr.Fields
		}
		f.mu.Unlock()
		return err
	}
	f.fieldErrors = nil

	f.state = StateSending
	gen := f.generation
	phone := f.draft.Phone
	f.mu.Unlock()

	dispatch, err := f.services.SendCode(context.WithoutCancel(ctx), phone)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stale(gen, StateSending) {
		return nil
	}
	if err != nil {
		f.state = StateDetails
		f.message = msgSendFailed
		return fmt.Errorf("send code: %w", err)
	}

	f.dispatch = dispatch
	f.code.Reset()
	f.code.SetDisabled(false)
	f.state = StateAwaitingCode
	return nil
}

// TypeDigit applies a keystroke to a code slot. Completing the code starts
// verification immediately.
func (f *Form) TypeDigit(ctx context.Context, slot int, text string) error {
	return f.editCode(ctx, func(in *otp.Input) { in.Type(slot, text) })
}

// Backspace handles a backspace keypress in a code slot.
func (f *Form) Backspace(slot int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkState(StateAwaitingCode); err != nil {
		return err
	}
	f.code.Backspace(slot)
	return nil
}

// Paste fills the code from clipboard text. A paste that completes the code
// starts verification immediately.
func (f *Form) Paste(ctx context.Context, text string) error {
	return f.editCode(ctx, func(in *otp.Input) { in.Paste(text) })
}

func (f *Form) editCode(ctx context.Context, edit func(*otp.Input)) error {
	f.mu.Lock()
	if err := f.checkState(StateAwaitingCode); err != nil {
		f.mu.Unlock()
		return err
	}

	f.completed = ""
	edit(f.code)
	code := f.completed
	f.completed = ""
	if code == "" {
		f.mu.Unlock()
		return nil
	}

	f.state = StateVerifying
	f.message = ""
	f.code.SetDisabled(true)
	gen := f.generation
	draft := f.draft
	f.mu.Unlock()

	return f.verify(context.WithoutCancel(ctx), gen, draft, code)
}

func (f *Form) verify(ctx context.Context, gen uint64, draft Draft, code string) error {
	ok, err := f.services.VerifyCode(ctx, draft.Phone, code)

	if err == nil && ok && f.kind == KindRegister {
		err = f.register(ctx, gen, draft)
		if err != nil {
			return err
		}
	}

	f.mu.Lock()
	if f.stale(gen, StateVerifying) {
		f.mu.Unlock()
		return nil
	}

	switch {
	case errors.Is(err, ErrCodeUnusable):
		f.restartDetails(msgCodeUnusable)
		f.mu.Unlock()
		return fmt.Errorf("verify code: %w", err)
	case err != nil:
		f.retryCode(msgVerifyFailed)
		f.mu.Unlock()
		return fmt.Errorf("verify code: %w", err)
	case !ok:
		f.retryCode(f.invalidCodeMessage())
		f.mu.Unlock()
		return nil
	}

	fire := f.succeed()
	f.mu.Unlock()
	fire()
	return nil
}

// register runs after a correct code for the register flow. On failure the
// form goes back to code entry with the error shown.
func (f *Form) register(ctx context.Context, gen uint64, draft Draft) error {
	err := f.services.Register(ctx, draft)
	if err == nil {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stale(gen, StateVerifying) {
		return nil
	}
	msg := msgRegisterFailed
	if errors.Is(err, domain.ErrAccountExists) {
		msg = msgAccountExists
	}
	f.retryCode(msg)
	return fmt.Errorf("register: %w", err)
}

// Back returns from code entry to the details step, keeping the draft.
func (f *Form) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkState(StateAwaitingCode); err != nil {
		return err
	}
	f.state = StateDetails
	f.message = ""
	f.dispatch = Dispatch{}
	f.code.Reset()
	f.generation++
	return nil
}

// Cancel discards the draft and closes the form. It is allowed from any
// state except Succeeded, including while a call is outstanding; that call's
// result is then ignored. Cancelling twice is a no-op.
func (f *Form) Cancel() error {
	f.mu.Lock()
	switch f.state {
	case StateSucceeded:
		f.mu.Unlock()
		return ErrInvalidState
	case StateCancelled:
		f.mu.Unlock()
		return nil
	}

	f.state = StateCancelled
	f.generation++
	f.draft = Draft{Kind: f.kind}
	f.code.Reset()
	f.code.SetDisabled(true)
	f.fieldErrors = nil
	f.message = ""
	onCancel := f.hooks.OnCancel
	f.mu.Unlock()

	if onCancel != nil {
		onCancel()
	}
	return nil
}

// View returns an immutable snapshot for rendering.
func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := View{
		ID:          f.id,
		Kind:        f.kind,
		State:       f.state,
		Name:        f.draft.Name,
		Email:       f.draft.Email,
		Phone:       f.draft.Phone,
		Message:     f.message,
		Slots:       f.code.Slots(),
		Focus:       f.code.Focus(),
		CodeLocked:  f.code.Disabled() || f.state != StateAwaitingCode,
		Hint:        f.opts.CodeHint,
		SuccessName: f.successName,
		DispatchID:  f.dispatch.ID,
	}
	if len(f.fieldErrors) > 0 {
		v.FieldErrors = make(map[string]string, len(f.fieldErrors))
		for k, msg := range f.fieldErrors {
			v.FieldErrors[k] = msg
		}
	}
	return v
}

func (f *Form) checkState(want State) error {
	if f.state.Busy() {
		return ErrBusy
	}
	if f.state != want {
		return ErrInvalidState
	}
	return nil
}

func (f *Form) stale(gen uint64, want State) bool {
	return f.generation != gen || f.state != want
}

func (f *Form) retryCode(msg string) {
	f.state = StateAwaitingCode
	f.message = msg
	f.code.SetDisabled(false)
	f.code.Reset()
}

// restartDetails sends the visitor back to the details step to request a
// fresh code. The draft is kept.
func (f *Form) restartDetails(msg string) {
	f.state = StateDetails
	f.message = msg
	f.dispatch = Dispatch{}
	f.code.Reset()
	f.code.SetDisabled(false)
}

func (f *Form) invalidCodeMessage() string {
	if f.opts.CodeHint == "" {
		return msgInvalidCode
	}
	return msgInvalidCode + " Try " + f.opts.CodeHint + "."
}

// succeed moves to Succeeded and returns the success hook bound to the
// entered name. Called with the lock held.
func (f *Form) succeed() func() {
	f.state = StateSucceeded
	f.successName = f.draft.Name
	name := f.draft.Name
	f.draft.Password = ""
	f.generation++

	onSuccess := f.hooks.OnSuccess
	return func() {
		if onSuccess != nil {
			onSuccess(name)
		}
	}
}
