package enrollment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/nfrund/alphaprime/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServices records calls and can block on gate until released.
type fakeServices struct {
	mu sync.Mutex

	code        string
	sendErr     error
	verifyErr   error
	registerErr error

	sends, verifies, registers int
	registered                 []Draft

	gate    chan struct{}
	entered chan struct{}
}

func newFakeServices() *fakeServices {
	return &fakeServices{code: "1234"}
}

// block makes the next backend call wait until release is called.
func (s *fakeServices) block() {
	s.gate = make(chan struct{})
	s.entered = make(chan struct{}, 1)
}

func (s *fakeServices) release() { close(s.gate) }

func (s *fakeServices) wait() {
	if s.gate != nil {
		s.entered <- struct{}{}
		<-s.gate
	}
}

func (s *fakeServices) SendCode(ctx context.Context, phone string) (Dispatch, error) {
	s.mu.Lock()
	s.sends++
	s.mu.Unlock()
	s.wait()
	if s.sendErr != nil {
		return Dispatch{}, s.sendErr
	}
	return Dispatch{ID: "dispatch-1"}, nil
}

func (s *fakeServices) VerifyCode(ctx context.Context, phone, code string) (bool, error) {
	s.mu.Lock()
	s.verifies++
	s.mu.Unlock()
	s.wait()
	if s.verifyErr != nil {
		return false, s.verifyErr
	}
	return code == s.code, nil
}

func (s *fakeServices) Register(ctx context.Context, d Draft) error {
	s.mu.Lock()
	s.registers++
	s.registered = append(s.registered, d)
	s.mu.Unlock()
	if s.registerErr != nil {
		return s.registerErr
	}
	return nil
}

type hookRecorder struct {
	mu        sync.Mutex
	successes []string
	cancels   int
}

func (h *hookRecorder) hooks() Hooks {
	return Hooks{
		OnSuccess: func(name string) {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.successes = append(h.successes, name)
		},
		OnCancel: func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.cancels++
		},
	}
}

func fillDetails(t *testing.T, f *Form, withPassword bool) {
	t.Helper()
	require.NoError(t, f.SetField("name", "Jane Doe"))
	require.NoError(t, f.SetField("email", "jane@example.com"))
	require.NoError(t, f.SetField("phone", "+1 234 567 890"))
	if withPassword {
		require.NoError(t, f.SetField("password", "s3cret!"))
	}
}

func typeCode(t *testing.T, f *Form, code string) error {
	t.Helper()
	var err error
	for i, r := range code {
		err = f.TypeDigit(context.Background(), i, string(r))
	}
	return err
}

func TestForm_Validation(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		draft   Draft
		invalid []string
	}{
		{"empty enroll", KindEnroll, Draft{}, []string{"name", "email", "phone"}},
		{"email without at", KindEnroll, Draft{Name: "a", Email: "jane.example.com", Phone: "1"}, []string{"email"}},
		{"register needs password", KindRegister, Draft{Name: "a", Email: "a@b", Phone: "1"}, []string{"password"}},
		{"enroll ignores password", KindEnroll, Draft{Name: "a", Email: "a@b", Phone: "1"}, nil},
		{"whitespace only", KindEnroll, Draft{Name: "  ", Email: "a@b", Phone: "\t"}, []string{"name", "phone"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFakeServices()
			f := New("f1", tt.kind, svc, Hooks{}, Options{})
			require.NoError(t, f.SetDraft(tt.draft))

			err := f.Submit(context.Background())

			if tt.invalid == nil {
				require.NoError(t, err)
				assert.Equal(t, StateAwaitingCode, f.State())
				return
			}
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, StateDetails, f.State())
			assert.Zero(t, svc.sends, "invalid drafts must not reach the backend")

			v := f.View()
			for _, field := range tt.invalid {
				assert.NotEmpty(t, v.FieldError(field), "field %s", field)
			}
			assert.Len(t, v.FieldErrors, len(tt.invalid))
		})
	}
}

func TestForm_EnrollHappyPath(t *testing.T) {
	svc := newFakeServices()
	rec := &hookRecorder{}
	f := New("f1", KindEnroll, svc, rec.hooks(), Options{CodeHint: "1234"})
	fillDetails(t, f, false)

	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, StateAwaitingCode, f.State())
	assert.Equal(t, "dispatch-1", f.View().DispatchID)

	require.NoError(t, typeCode(t, f, "1234"))

	assert.Equal(t, StateSucceeded, f.State())
	assert.Equal(t, []string{"Jane Doe"}, rec.successes)
	assert.Equal(t, 1, svc.verifies)
	assert.Zero(t, svc.registers, "enroll does not register an account")
	assert.Equal(t, "Jane Doe", f.View().SuccessName)
}

func TestForm_RegisterHappyPath(t *testing.T) {
	svc := newFakeServices()
	rec := &hookRecorder{}
	f := New("f1", KindRegister, svc, rec.hooks(), Options{})
	fillDetails(t, f, true)

	require.NoError(t, f.Submit(context.Background()))
	require.NoError(t, f.Paste(context.Background(), "1234"))

	assert.Equal(t, StateSucceeded, f.State())
	require.Len(t, svc.registered, 1)
	assert.Equal(t, "s3cret!", svc.registered[0].Password)
	assert.Equal(t, KindRegister, svc.registered[0].Kind)
	assert.Equal(t, []string{"Jane Doe"}, rec.successes)
}

func TestForm_WrongCode(t *testing.T) {
	svc := newFakeServices()
	rec := &hookRecorder{}
	f := New("f1", KindEnroll, svc, rec.hooks(), Options{CodeHint: "1234"})
	fillDetails(t, f, false)
	require.NoError(t, f.Submit(context.Background()))

	require.NoError(t, typeCode(t, f, "9999"))

	v := f.View()
	assert.Equal(t, StateAwaitingCode, v.State)
	assert.Equal(t, "Invalid OTP. Try 1234.", v.Message)
	assert.Equal(t, [4]string{}, v.Slots, "slots are cleared for another try")
	assert.Equal(t, 0, v.Focus)
	assert.False(t, v.CodeLocked)
	assert.Empty(t, rec.successes)

	// A second attempt with the right code succeeds.
	require.NoError(t, typeCode(t, f, "1234"))
	assert.Equal(t, StateSucceeded, f.State())
}

func TestForm_WrongCodeWithoutHint(t *testing.T) {
	svc := newFakeServices()
	f := New("f1", KindEnroll, svc, Hooks{}, Options{})
	fillDetails(t, f, false)
	require.NoError(t, f.Submit(context.Background()))

	require.NoError(t, f.Paste(context.Background(), "0000"))

	assert.Equal(t, "Invalid OTP.", f.View().Message)
}

func TestForm_VerifyError(t *testing.T) {
	svc := newFakeServices()
	svc.verifyErr = errors.New("backend down")
	f := New("f1", KindEnroll, svc, Hooks{}, Options{CodeHint: "1234"})
	fillDetails(t, f, false)
	require.NoError(t, f.Submit(context.Background()))

	err := f.Paste(context.Background(), "1234")

	require.Error(t, err)
	v := f.View()
	assert.Equal(t, StateAwaitingCode, v.State)
	assert.Equal(t, "Verification failed.", v.Message)
	assert.Equal(t, [4]string{}, v.Slots)
}

func TestForm_CodeUnusable(t *testing.T) {
	svc := newFakeServices()
	svc.verifyErr = fmt.Errorf("%w: attempts used up", ErrCodeUnusable)
	f := New("f1", KindEnroll, svc, Hooks{}, Options{CodeHint: "1234"})
	fillDetails(t, f, false)
	require.NoError(t, f.Submit(context.Background()))

	err := f.Paste(context.Background(), "1234")

	require.ErrorIs(t, err, ErrCodeUnusable)
	v := f.View()
	assert.Equal(t, StateDetails, v.State)
	assert.Equal(t, "This code can no longer be used. Please request a new one.", v.Message)
	assert.Equal(t, "Jane Doe", v.Name)
	assert.Empty(t, v.DispatchID)

	svc.verifyErr = nil
	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, StateAwaitingCode, f.State())
	assert.Equal(t, 2, svc.sends)
}

func TestForm_SendError(t *testing.T) {
	svc := newFakeServices()
	svc.sendErr = errors.New("sms gateway unavailable")
	f := New("f1", KindEnroll, svc, Hooks{}, Options{})
	fillDetails(t, f, false)

	err := f.Submit(context.Background())

	require.ErrorIs(t, err, svc.sendErr)
	v := f.View()
	assert.Equal(t, StateDetails, v.State)
	assert.NotEmpty(t, v.Message)
	assert.Equal(t, "Jane Doe", v.Name, "draft survives a failed send")
}

func TestForm_RegisterFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"duplicate account", domain.ErrAccountExists, msgAccountExists},
		{"other failure", errors.New("disk full"), msgRegisterFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFakeServices()
			svc.registerErr = tt.err
			rec := &hookRecorder{}
			f := New("f1", KindRegister, svc, rec.hooks(), Options{})
			fillDetails(t, f, true)
			require.NoError(t, f.Submit(context.Background()))

			err := f.Paste(context.Background(), "1234")

			require.ErrorIs(t, err, tt.err)
			v := f.View()
			assert.Equal(t, StateAwaitingCode, v.State)
			assert.Equal(t, tt.want, v.Message)
			assert.Equal(t, [4]string{}, v.Slots)
			assert.Empty(t, rec.successes)
		})
	}
}

func TestForm_Back(t *testing.T) {
	svc := newFakeServices()
	f := New("f1", KindEnroll, svc, Hooks{}, Options{})
	fillDetails(t, f, false)
	require.NoError(t, f.Submit(context.Background()))
	require.NoError(t, f.TypeDigit(context.Background(), 0, "1"))

	require.NoError(t, f.Back())

	v := f.View()
	assert.Equal(t, StateDetails, v.State)
	assert.Equal(t, "Jane Doe", v.Name)
	assert.Equal(t, "jane@example.com", v.Email)
	assert.Equal(t, [4]string{}, v.Slots, "code is discarded")

	// Details are editable again and the code can be re-sent.
	require.NoError(t, f.SetField("phone", "+1 555 0100"))
	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, 2, svc.sends)
}

func TestForm_InvalidTransitions(t *testing.T) {
	svc := newFakeServices()
	f := New("f1", KindEnroll, svc, Hooks{}, Options{})

	assert.ErrorIs(t, f.Back(), ErrInvalidState)
	assert.ErrorIs(t, f.TypeDigit(context.Background(), 0, "1"), ErrInvalidState)
	assert.ErrorIs(t, f.Paste(context.Background(), "1234"), ErrInvalidState)
	assert.ErrorIs(t, f.Backspace(1), ErrInvalidState)

	fillDetails(t, f, false)
	require.NoError(t, f.Submit(context.Background()))
	assert.ErrorIs(t, f.SetField("name", "x"), ErrInvalidState)
	assert.ErrorIs(t, f.Submit(context.Background()), ErrInvalidState)
}

func TestForm_BusyWhileSending(t *testing.T) {
	svc := newFakeServices()
	f := New("f1", KindEnroll, svc, Hooks{}, Options{})
	fillDetails(t, f, false)
	svc.block()

	done := make(chan error, 1)
	go func() { done <- f.Submit(context.Background()) }()
	<-svc.entered

	assert.Equal(t, StateSending, f.State())
	assert.ErrorIs(t, f.Submit(context.Background()), ErrBusy)
	assert.ErrorIs(t, f.SetField("name", "x"), ErrBusy)

	svc.release()
	require.NoError(t, <-done)
	assert.Equal(t, 1, svc.sends, "no duplicate dispatch")
	assert.Equal(t, StateAwaitingCode, f.State())
}

func TestForm_BusyWhileVerifying(t *testing.T) {
	svc := newFakeServices()
	f := New("f1", KindEnroll, svc, Hooks{}, Options{})
	fillDetails(t, f, false)
	require.NoError(t, f.Submit(context.Background()))
	svc.block()

	done := make(chan error, 1)
	go func() { done <- f.Paste(context.Background(), "1234") }()
	<-svc.entered

	v := f.View()
	assert.Equal(t, StateVerifying, v.State)
	assert.True(t, v.CodeLocked)
	assert.ErrorIs(t, f.Paste(context.Background(), "1234"), ErrBusy)
	assert.ErrorIs(t, f.TypeDigit(context.Background(), 0, "5"), ErrBusy)
	assert.ErrorIs(t, f.Back(), ErrBusy)

	svc.release()
	require.NoError(t, <-done)
	assert.Equal(t, 1, svc.verifies, "no duplicate verify")
}

func TestForm_CancelDuringVerifyDropsResult(t *testing.T) {
	svc := newFakeServices()
	rec := &hookRecorder{}
	f := New("f1", KindEnroll, svc, rec.hooks(), Options{})
	fillDetails(t, f, false)
	require.NoError(t, f.Submit(context.Background()))
	svc.block()

	done := make(chan error, 1)
	go func() { done <- f.Paste(context.Background(), "1234") }()
	<-svc.entered

	require.NoError(t, f.Cancel())
	svc.release()
	require.NoError(t, <-done)

	assert.Equal(t, StateCancelled, f.State())
	assert.Empty(t, rec.successes, "a result arriving after cancel is ignored")
	assert.Equal(t, 1, rec.cancels)
	assert.Empty(t, f.View().Name, "draft is discarded")
}

func TestForm_CancelDuringSendDropsResult(t *testing.T) {
	svc := newFakeServices()
	f := New("f1", KindEnroll, svc, Hooks{}, Options{})
	fillDetails(t, f, false)
	svc.block()

	done := make(chan error, 1)
	go func() { done <- f.Submit(context.Background()) }()
	<-svc.entered

	require.NoError(t, f.Cancel())
	svc.release()
	require.NoError(t, <-done)

	assert.Equal(t, StateCancelled, f.State())
}

func TestForm_HooksFireOnce(t *testing.T) {
	t.Run("cancel", func(t *testing.T) {
		rec := &hookRecorder{}
		f := New("f1", KindEnroll, newFakeServices(), rec.hooks(), Options{})

		require.NoError(t, f.Cancel())
		require.NoError(t, f.Cancel())

		assert.Equal(t, 1, rec.cancels)
	})

	t.Run("success then cancel", func(t *testing.T) {
		rec := &hookRecorder{}
		f := New("f1", KindEnroll, newFakeServices(), rec.hooks(), Options{})
		fillDetails(t, f, false)
		require.NoError(t, f.Submit(context.Background()))
		require.NoError(t, f.Paste(context.Background(), "1234"))

		assert.ErrorIs(t, f.Cancel(), ErrInvalidState)
		assert.ErrorIs(t, f.Paste(context.Background(), "1234"), ErrInvalidState)

		assert.Equal(t, []string{"Jane Doe"}, rec.successes)
		assert.Zero(t, rec.cancels)
	})
}

func TestForm_CancelledContextStillCompletes(t *testing.T) {
	svc := newFakeServices()
	f := New("f1", KindEnroll, svc, Hooks{}, Options{})
	fillDetails(t, f, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, f.Submit(ctx))
	assert.Equal(t, StateAwaitingCode, f.State())
}

func TestForm_CodeEditing(t *testing.T) {
	svc := newFakeServices()
	f := New("f1", KindEnroll, svc, Hooks{}, Options{})
	fillDetails(t, f, false)
	require.NoError(t, f.Submit(context.Background()))

	require.NoError(t, f.TypeDigit(context.Background(), 0, "1"))
	require.NoError(t, f.TypeDigit(context.Background(), 1, "x"))
	v := f.View()
	assert.Equal(t, [4]string{"1", "", "", ""}, v.Slots)
	assert.Equal(t, 1, v.Focus)

	require.NoError(t, f.Backspace(1))
	assert.Equal(t, 0, f.View().Focus)
	assert.Zero(t, svc.verifies)
}
