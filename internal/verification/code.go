package verification

import (
	"time"
)

// Challenge is a pending one-time code for a phone number.
type Challenge struct {
	ID          string
	Phone       string
	Code        string
	Attempts    int
	MaxAttempts int
	ExpiresAt   time.Time
	IsUsed      bool
}

// IsValid checks if the challenge can still be answered.
func (c *Challenge) IsValid(now time.Time) bool {
	return !c.IsUsed && c.CanAttempt() && now.Before(c.ExpiresAt)
}

// CanAttempt checks if more attempts are allowed.
func (c *Challenge) CanAttempt() bool {
	return c.Attempts < c.MaxAttempts && !c.IsUsed
}
