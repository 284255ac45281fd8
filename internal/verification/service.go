// Package verification issues and checks one-time codes sent to phone numbers.
package verification

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const codeLength = 4

var (
	ErrNoChallenge       = errors.New("no pending verification for this phone")
	ErrAttemptsExhausted = errors.New("too many verification attempts")
	ErrChallengeExpired  = errors.New("verification code expired")
)

// Options configures a Service.
type Options struct {
	TTL         time.Duration
	MaxAttempts int
	// FixedCode, when non-empty, is issued instead of a random code.
	FixedCode string
}

// Service keeps pending challenges in an expiring in-memory store keyed by
// phone number. Issuing a new challenge replaces any pending one.
type Service struct {
	mu       sync.Mutex
	pending  *cache.Cache
	opts     Options
	now      func() time.Time
	generate func() (string, error)
}

// NewService creates a Service. Zero option values fall back to a five minute
// TTL and five attempts.
func NewService(opts Options) *Service {
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Minute
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 5
	}

	s := &Service{
		pending:  cache.New(opts.TTL, 2*opts.TTL),
		opts:     opts,
		now:      time.Now,
		generate: GenerateCode,
	}
	if opts.FixedCode != "" {
		code := opts.FixedCode
		s.generate = func() (string, error) { return code, nil }
	}
	return s
}

// Issue creates a challenge for phone and returns it. Callers deliver
// Challenge.Code out of band and must not hand it back to the visitor.
func (s *Service) Issue(phone string) (Challenge, error) {
	code, err := s.generate()
	if err != nil {
		return Challenge{}, err
	}

	ch := Challenge{
		ID:          uuid.NewString(),
		Phone:       phone,
		Code:        code,
		MaxAttempts: s.opts.MaxAttempts,
		ExpiresAt:   s.now().Add(s.opts.TTL),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Set(phone, &ch, s.opts.TTL)
	return ch, nil
}

// Verify checks code against the pending challenge for phone. A wrong code
// returns false with a nil error until the attempts run out. A matching code
// consumes the challenge. With a fixed code there is no attempt limit, so
// the known code always gets through.
func (s *Service) Verify(phone, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, found := s.pending.Get(phone)
	if !found {
		return false, ErrNoChallenge
	}
	ch := v.(*Challenge)

	if !s.now().Before(ch.ExpiresAt) {
		s.pending.Delete(phone)
		return false, ErrChallengeExpired
	}
	if s.opts.FixedCode == "" && !ch.CanAttempt() {
		s.pending.Delete(phone)
		return false, ErrAttemptsExhausted
	}

	ch.Attempts++
	if subtle.ConstantTimeCompare([]byte(ch.Code), []byte(code)) == 1 {
		ch.IsUsed = true
		s.pending.Delete(phone)
		return true, nil
	}
	return false, nil
}

// Pending returns the number of outstanding challenges.
func (s *Service) Pending() int {
	return s.pending.ItemCount()
}

// GenerateCode returns a random numeric code from crypto/rand.
func GenerateCode() (string, error) {
	max := big.NewInt(10000)

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate secure random number: %w", err)
	}

	return fmt.Sprintf("%0*d", codeLength, n.Int64()), nil
}
