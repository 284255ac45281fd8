package sms

import (
	"fmt"

	"github.com/nfrund/alphaprime/internal/config"
	"github.com/nfrund/alphaprime/internal/domain"
)

// NewSender returns an SMS sender based on the configuration.
func NewSender(cfg *config.Config) (domain.SMSSender, error) {
	switch cfg.SMSProvider {
	case "", "log":
		return &LogSender{}, nil
	case "gateway":
		sender, err := NewGatewaySender(GatewayConfig{
			APIURL:     cfg.SMSAPIURL,
			APIKey:     cfg.SMSAPIKey,
			TemplateID: cfg.SMSTemplateID,
			MaxRetries: 2,
		})
		if err != nil {
			return nil, err
		}
		return sender, nil
	default:
		return nil, fmt.Errorf("unknown sms provider: %s", cfg.SMSProvider)
	}
}
