package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration. It is loaded once at process start
// and treated as read-only afterwards.
type Config struct {
	StripeSecretKey     string
	StripeWebhookSecret string
	// Public site URL used for checkout success/cancel redirects.
	BaseURL string

	// Internal provisioning API.
	BayanLabAPIURL      string
	BayanLabInternalKey string

	SendGridAPIKey    string
	SendGridFromEmail string

	// Public data API consumed by the directory endpoints.
	DataAPIURL     string
	BayanLabAPIKey string

	// Optional: enables the webhook delivery journal.
	DatabaseURL string

	// Server ports
	HTTPPort string
	GRPCPort string

	LogLevel  string
	LogFormat string

	GatewayTimeoutRaw      string
	ProvisioningTimeoutRaw string
	EmailTimeoutRaw        string
	DataAPITimeoutRaw      string
	DataAPICacheTTLRaw     string

	// Parsed from the *Raw fields above.
	GatewayTimeout      time.Duration
	ProvisioningTimeout time.Duration
	EmailTimeout        time.Duration
	DataAPITimeout      time.Duration
	DataAPICacheTTL     time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{}

	// Try to load .env file from current directory and parent directories
	currentDir, _ := os.Getwd()
	for currentDir != "/" && currentDir != "." {
		envPath := filepath.Join(currentDir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// godotenv.Load never overrides variables already set in the process.
			if err := godotenv.Load(envPath); err != nil {
				return nil, fmt.Errorf("failed to load .env file: %v", err)
			}
			break
		}
		currentDir = filepath.Dir(currentDir)
	}

	vars := []struct {
		name     string
		envVar   string
		display  string
		required bool
	}{
		{"StripeSecretKey", "STRIPE_SECRET_KEY", "Stripe Secret Key", true},
		// The webhook endpoint answers 500 until this is set, the rest of the service still runs.
		{"StripeWebhookSecret", "STRIPE_WEBHOOK_SECRET", "Stripe Webhook Secret", false},
		{"BaseURL", "BASE_URL", "Base URL", false},
		{"BayanLabAPIURL", "BAYANLAB_API_URL", "BayanLab API URL", false},
		{"BayanLabInternalKey", "BAYANLAB_INTERNAL_KEY", "BayanLab Internal Key", false},
		{"SendGridAPIKey", "SENDGRID_API_KEY", "SendGrid API Key", false},
		{"SendGridFromEmail", "SENDGRID_FROM_EMAIL", "SendGrid From Email", false},
		{"DataAPIURL", "DATA_API_URL", "Data API URL", false},
		{"BayanLabAPIKey", "BAYANLAB_API_KEY", "BayanLab API Key", false},
		{"DatabaseURL", "DATABASE_URL", "Database URL", false},
		{"HTTPPort", "PORT", "HTTP Port", false},
		{"GRPCPort", "GRPC_PORT", "gRPC Port", false},
		{"LogLevel", "LOG_LEVEL", "Log Level", false},
		{"LogFormat", "LOG_FORMAT", "Log Format", false},
		{"GatewayTimeoutRaw", "GATEWAY_TIMEOUT", "Gateway Timeout", false},
		{"ProvisioningTimeoutRaw", "PROVISIONING_TIMEOUT", "Provisioning Timeout", false},
		{"EmailTimeoutRaw", "EMAIL_TIMEOUT", "Email Timeout", false},
		{"DataAPITimeoutRaw", "DATA_API_TIMEOUT", "Data API Timeout", false},
		{"DataAPICacheTTLRaw", "DATA_API_CACHE_TTL", "Data API Cache TTL", false},
	}

	for _, v := range vars {
		value := os.Getenv(v.envVar)
		if v.required && value == "" {
			return nil, fmt.Errorf("missing required environment variable: %s", v.display)
		}
		configField := reflect.ValueOf(config).Elem().FieldByName(v.name)
		configField.SetString(value)
	}

	applyDefaults(config)

	durations := []struct {
		raw     string
		display string
		dest    *time.Duration
	}{
		{config.GatewayTimeoutRaw, "Gateway Timeout", &config.GatewayTimeout},
		{config.ProvisioningTimeoutRaw, "Provisioning Timeout", &config.ProvisioningTimeout},
		{config.EmailTimeoutRaw, "Email Timeout", &config.EmailTimeout},
		{config.DataAPITimeoutRaw, "Data API Timeout", &config.DataAPITimeout},
		{config.DataAPICacheTTLRaw, "Data API Cache TTL", &config.DataAPICacheTTL},
	}
	for _, d := range durations {
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.display, d.raw, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("invalid %s %q: must be positive", d.display, d.raw)
		}
		*d.dest = parsed
	}

	return config, nil
}

func applyDefaults(config *Config) {
	defaults := []struct {
		field *string
		value string
	}{
		{&config.BaseURL, DefaultBaseURL},
		{&config.BayanLabAPIURL, DefaultBayanLabAPIURL},
		{&config.SendGridFromEmail, DefaultFromEmail},
		{&config.DataAPIURL, DefaultDataAPIURL},
		{&config.HTTPPort, "8080"},
		{&config.GRPCPort, "50051"},
		{&config.LogLevel, "info"},
		{&config.LogFormat, "json"},
		{&config.GatewayTimeoutRaw, DefaultTimeout},
		{&config.ProvisioningTimeoutRaw, DefaultTimeout},
		{&config.EmailTimeoutRaw, DefaultTimeout},
		{&config.DataAPITimeoutRaw, DefaultTimeout},
		{&config.DataAPICacheTTLRaw, DefaultCacheTTL},
	}
	for _, d := range defaults {
		if *d.field == "" {
			*d.field = d.value
		}
	}
}
