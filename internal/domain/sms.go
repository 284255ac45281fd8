package domain

import "context"

// SMSSender delivers a short text message to a phone number. This allows for
// different implementations (e.g., logging in development, an HTTP gateway).
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}
