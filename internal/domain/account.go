package domain

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Account is a registered visitor.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// SetPassword hashes password with bcrypt and stores the hash.
func (a *Account) SetPassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hashed)
	return nil
}

// CheckPassword compares a plain-text password with the stored hash.
func (a *Account) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
}

// AccountRepository defines the contract for account storage.
// It lives in the domain because it's a requirement OF the domain, not
// of the storage implementation.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	Count(ctx context.Context) (int, error)
}
