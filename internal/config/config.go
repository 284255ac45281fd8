package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	ServerAddr    string
	AppBaseURL    string
	AppEnv        string
	SessionSecret string
	LogFormat     string
	LogLevel      string

	// Simulated backend latencies.
	CatalogLatency    time.Duration
	SendCodeLatency   time.Duration
	VerifyCodeLatency time.Duration
	RegisterLatency   time.Duration

	OTPTTL         time.Duration
	OTPMaxAttempts int
	// OTPFixedCode, when set, is issued for every challenge and shown as a
	// hint on the code step.
	OTPFixedCode string

	FormTTL            time.Duration
	RateLimitPerMinute int

	SMSProvider   string
	SMSAPIURL     string
	SMSAPIKey     string
	SMSTemplateID string

	ContentDir   string
	ContentWatch bool

	TracingEnabled     bool
	TracingServiceName string
	TracingZipkinURL   string
}

// New loads configuration from the environment, reading a .env file first if
// one exists. It exits the process on invalid configuration.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// Load builds a Config from environment variables alone.
func Load() (*Config, error) {
	var errs []error

	env := getString("APP_ENV", "development")
	fixedDefault := "1234"
	if env == "production" {
		fixedDefault = ""
	}

	cfg := &Config{
		ServerAddr:    getString("SERVER_ADDR", ":8080"),
		AppBaseURL:    getString("APP_BASE_URL", "http://localhost:8080"),
		AppEnv:        env,
		SessionSecret: os.Getenv("SESSION_SECRET"),
		LogFormat:     getString("LOG_FORMAT", "text"),
		LogLevel:      getString("LOG_LEVEL", "debug"),

		CatalogLatency:    getDuration("CATALOG_LATENCY", 600*time.Millisecond, &errs),
		SendCodeLatency:   getDuration("SEND_CODE_LATENCY", 1000*time.Millisecond, &errs),
		VerifyCodeLatency: getDuration("VERIFY_CODE_LATENCY", 800*time.Millisecond, &errs),
		RegisterLatency:   getDuration("REGISTER_LATENCY", 1200*time.Millisecond, &errs),

		OTPTTL:         getDuration("OTP_TTL", 5*time.Minute, &errs),
		OTPMaxAttempts: getInt("OTP_MAX_ATTEMPTS", 5, &errs),
		OTPFixedCode:   getString("OTP_FIXED_CODE", fixedDefault),

		FormTTL:            getDuration("FORM_TTL", 30*time.Minute, &errs),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 20, &errs),

		SMSProvider:   getString("SMS_PROVIDER", "log"),
		SMSAPIURL:     os.Getenv("SMS_API_URL"),
		SMSAPIKey:     os.Getenv("SMS_API_KEY"),
		SMSTemplateID: os.Getenv("SMS_TEMPLATE_ID"),

		ContentDir:   os.Getenv("CONTENT_DIR"),
		ContentWatch: getBool("CONTENT_WATCH", false, &errs),

		TracingEnabled:     getBool("PUBSUB_TRACING_ENABLED", false, &errs),
		TracingServiceName: getString("PUBSUB_TRACING_SERVICE_NAME", "alphaprime"),
		TracingZipkinURL:   getString("PUBSUB_TRACING_ZIPKIN_URL", "http://localhost:9411/api/v2/spans"),
	}

	if cfg.SessionSecret == "" {
		if cfg.IsProduction() {
			errs = append(errs, errors.New("SESSION_SECRET is required in production"))
		}
		cfg.SessionSecret = "alphaprime-development-session-secret"
	}
	if cfg.OTPFixedCode != "" && !isCode(cfg.OTPFixedCode) {
		errs = append(errs, fmt.Errorf("OTP_FIXED_CODE must be 4 digits, got %q", cfg.OTPFixedCode))
	}
	if cfg.OTPMaxAttempts < 1 {
		errs = append(errs, errors.New("OTP_MAX_ATTEMPTS must be at least 1"))
	}
	if cfg.RateLimitPerMinute < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must be at least 1"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func getInt(key string, def int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func getBool(key string, def bool, errs *[]error) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}

func isCode(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
