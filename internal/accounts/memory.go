// Package accounts holds registered accounts for the lifetime of the process.
package accounts

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/alphaprime/internal/domain"
)

// MemoryStore implements domain.AccountRepository with a map keyed by the
// normalised email address.
type MemoryStore struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.Account
}

var _ domain.AccountRepository = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byEmail: make(map[string]*domain.Account)}
}

// Create stores account, assigning an ID and creation time when missing.
func (s *MemoryStore) Create(ctx context.Context, account *domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := normalizeEmail(account.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[key]; exists {
		return domain.ErrAccountExists
	}
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	stored := *account
	s.byEmail[key] = &stored
	return nil
}

// FindByEmail returns a copy of the account registered under email.
func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *a
	return &out, nil
}

// Count returns the number of stored accounts.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byEmail), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
