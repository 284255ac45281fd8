// Package events defines the typed events published on the in-process bus.
package events

import (
	"time"

	"github.com/nfrund/alphaprime/internal/pubsub"
)

// FormCompleted is published when a registration or enrollment form succeeds.
type FormCompleted struct {
	FormID string    `json:"form_id"`
	Kind   string    `json:"kind"`
	Name   string    `json:"name"`
	At     time.Time `json:"at"`
}

// FormCancelled is published when a visitor closes a form before finishing.
type FormCancelled struct {
	FormID string    `json:"form_id"`
	Kind   string    `json:"kind"`
	State  string    `json:"state"`
	At     time.Time `json:"at"`
}

// CodeDispatched is published after a one-time code was handed to the SMS
// sender.
type CodeDispatched struct {
	DispatchID string    `json:"dispatch_id"`
	Phone      string    `json:"phone"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// AccountRegistered is published when a new account is recorded.
type AccountRegistered struct {
	AccountID string    `json:"account_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	At        time.Time `json:"at"`
}

// CatalogReloaded is published after content files were read again.
type CatalogReloaded struct {
	Courses int       `json:"courses"`
	Posts   int       `json:"posts"`
	Career  int       `json:"career"`
	At      time.Time `json:"at"`
}

var (
	EnrollmentSucceeded = pubsub.NewEvent[FormCompleted]("enrollment.succeeded", "A registration or enrollment form reached success")
	EnrollmentCancelled = pubsub.NewEvent[FormCancelled]("enrollment.cancelled", "A registration or enrollment form was closed before success")
	CodeSent            = pubsub.NewEvent[CodeDispatched]("verification.code_sent", "A one-time code was dispatched to a phone number")
	AccountCreated      = pubsub.NewEvent[AccountRegistered]("account.registered", "A visitor registered a new account")
	ContentReloaded     = pubsub.NewEvent[CatalogReloaded]("catalog.reloaded", "Catalog content was reloaded from disk")
)

// MaskPhone keeps only the last two digits of a phone number for logs and
// events.
func MaskPhone(phone string) string {
	digits := make([]byte, 0, len(phone))
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			digits = append(digits, phone[i])
		}
	}
	if len(digits) <= 2 {
		return "**"
	}
	masked := make([]byte, len(digits))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(masked)-2:], digits[len(digits)-2:])
	return string(masked)
}
