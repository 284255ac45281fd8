// Package backend provides the send-code, verify-code and register calls
// used by enrollment forms, with simulated latency.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nfrund/alphaprime/internal/domain"
	"github.com/nfrund/alphaprime/internal/enrollment"
	"github.com/nfrund/alphaprime/internal/events"
	"github.com/nfrund/alphaprime/internal/pubsub"
	"github.com/nfrund/alphaprime/internal/verification"
)

// Latency holds the artificial delay applied before each call completes.
type Latency struct {
	SendCode   time.Duration
	VerifyCode time.Duration
	Register   time.Duration
}

// Dependencies holds the services required by the backend.
type Dependencies struct {
	Codes     *verification.Service
	SMS       domain.SMSSender
	Accounts  domain.AccountRepository
	Publisher pubsub.Publisher
	Latency   Latency
}

// Service implements enrollment.Services.
type Service struct {
	codes     *verification.Service
	sms       domain.SMSSender
	accounts  domain.AccountRepository
	publisher pubsub.Publisher
	latency   Latency
}

var _ enrollment.Services = (*Service)(nil)

// New creates a Service.
func New(deps Dependencies) *Service {
	return &Service{
		codes:     deps.Codes,
		sms:       deps.SMS,
		accounts:  deps.Accounts,
		publisher: deps.Publisher,
		latency:   deps.Latency,
	}
}

// SendCode issues a code for phone and delivers it by SMS. The code is not
// returned.
func (s *Service) SendCode(ctx context.Context, phone string) (enrollment.Dispatch, error) {
	if err := sleep(ctx, s.latency.SendCode); err != nil {
		return enrollment.Dispatch{}, err
	}

	ch, err := s.codes.Issue(phone)
	if err != nil {
		return enrollment.Dispatch{}, fmt.Errorf("issue code: %w", err)
	}

	body := fmt.Sprintf("Your AlphaPrime verification code is %s", ch.Code)
	if err := s.sms.Send(ctx, phone, body); err != nil {
		return enrollment.Dispatch{}, fmt.Errorf("deliver code: %w", err)
	}

	masked := events.MaskPhone(phone)
	slog.InfoContext(ctx, "Verification code dispatched", "dispatch_id", ch.ID, "phone", masked)
	s.publish(ctx, func() error {
		return pubsub.Publish(ctx, s.publisher, events.CodeSent, "", events.CodeDispatched{
			DispatchID: ch.ID,
			Phone:      masked,
			ExpiresAt:  ch.ExpiresAt,
		})
	})

	return enrollment.Dispatch{ID: ch.ID, ExpiresAt: ch.ExpiresAt}, nil
}

// VerifyCode reports whether code answers the pending challenge for phone.
func (s *Service) VerifyCode(ctx context.Context, phone, code string) (bool, error) {
	if err := sleep(ctx, s.latency.VerifyCode); err != nil {
		return false, err
	}
	ok, err := s.codes.Verify(phone, code)
	if errors.Is(err, verification.ErrNoChallenge) ||
		errors.Is(err, verification.ErrChallengeExpired) ||
		errors.Is(err, verification.ErrAttemptsExhausted) {
		return false, fmt.Errorf("%w: %w", enrollment.ErrCodeUnusable, err)
	}
	return ok, err
}

// Register records an account for the draft. The password is stored hashed.
func (s *Service) Register(ctx context.Context, draft enrollment.Draft) error {
	if err := sleep(ctx, s.latency.Register); err != nil {
		return err
	}

	account := &domain.Account{
		Name:  draft.Name,
		Email: draft.Email,
		Phone: draft.Phone,
	}
	if err := account.SetPassword(draft.Password); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Account registered", "account_id", account.ID)
	s.publish(ctx, func() error {
		return pubsub.Publish(ctx, s.publisher, events.AccountCreated, "", events.AccountRegistered{
			AccountID: account.ID,
			Name:      account.Name,
			Email:     account.Email,
			At:        account.CreatedAt,
		})
	})
	return nil
}

// publish runs fn when a publisher is configured. Event delivery failures
// are logged and never fail the call.
func (s *Service) publish(ctx context.Context, fn func() error) {
	if s.publisher == nil {
		return
	}
	if err := fn(); err != nil {
		slog.ErrorContext(ctx, "Failed to publish event", "error", err)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
