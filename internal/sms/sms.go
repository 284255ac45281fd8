package sms

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// --- LogSender (for development) ---

// LogSender writes messages to the log instead of sending them.
type LogSender struct{}

// Send logs the message.
func (s *LogSender) Send(ctx context.Context, phone, message string) error {
	slog.InfoContext(ctx, "SMS sent (logged)", "to", phone, "body", message)
	return nil
}

// --- GatewaySender (for production) ---

// GatewayConfig configures a GatewaySender.
type GatewayConfig struct {
	APIURL     string
	APIKey     string
	TemplateID string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Validate checks that the required gateway settings are present.
func (c *GatewayConfig) Validate() error {
	if c.APIURL == "" {
		return &SendError{Type: ErrTypeConfig, Message: "SMS_API_URL is required"}
	}
	if c.APIKey == "" {
		return &SendError{Type: ErrTypeConfig, Message: "SMS_API_KEY is required"}
	}
	return nil
}

// GatewaySender posts messages to an HTTP SMS gateway.
type GatewaySender struct {
	cfg    GatewayConfig
	client *resty.Client
}

type gatewayPayload struct {
	To         string `json:"to"`
	Message    string `json:"message"`
	TemplateID string `json:"template_id,omitempty"`
}

type gatewayError struct {
	Error string `json:"error"`
}

// NewGatewaySender builds a sender with retries on network failures, 429 and
// 5xx responses.
func NewGatewaySender(cfg GatewayConfig) (*GatewaySender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.APIURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeaders(map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
			"X-API-KEY":    cfg.APIKey,
		}).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(cfg.RetryDelay).
		SetRetryMaxWaitTime(4 * cfg.RetryDelay).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= 500
		})

	return &GatewaySender{cfg: cfg, client: client}, nil
}

// Send dispatches message to phone.
func (s *GatewaySender) Send(ctx context.Context, phone, message string) error {
	if phone == "" {
		return &SendError{Type: ErrTypeValidation, Message: "phone number is required"}
	}

	var apiErr gatewayError
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(gatewayPayload{To: phone, Message: message, TemplateID: s.cfg.TemplateID}).
		SetError(&apiErr).
		Post("/messages")
	if err != nil {
		return &SendError{Type: ErrTypeNetwork, Message: "request failed", Cause: err}
	}

	if resp.IsSuccess() {
		slog.InfoContext(ctx, "Successfully sent SMS via gateway", "to", phone)
		return nil
	}

	msg := apiErr.Error
	if msg == "" {
		msg = resp.String()
	}
	if resp.StatusCode() == http.StatusTooManyRequests {
		return &SendError{Type: ErrTypeRateLimit, Code: resp.StatusCode(), Message: "rate limit exceeded"}
	}
	return &SendError{Type: ErrTypeProvider, Code: resp.StatusCode(), Message: msg}
}
