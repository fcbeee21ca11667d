package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	// Run from a temp dir so no developer .env leaks into the assertions.
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, k := range []string{
		"STRIPE_SECRET_KEY", "STRIPE_WEBHOOK_SECRET", "BASE_URL", "BAYANLAB_API_URL",
		"BAYANLAB_INTERNAL_KEY", "SENDGRID_API_KEY", "SENDGRID_FROM_EMAIL", "DATA_API_URL",
		"BAYANLAB_API_KEY", "DATABASE_URL", "PORT", "GRPC_PORT", "LOG_LEVEL", "LOG_FORMAT",
		"GATEWAY_TIMEOUT", "PROVISIONING_TIMEOUT", "EMAIL_TIMEOUT", "DATA_API_TIMEOUT",
		"DATA_API_CACHE_TTL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_MissingStripeKey(t *testing.T) {
	isolate(t)
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Stripe Secret Key")
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultBayanLabAPIURL, cfg.BayanLabAPIURL)
	assert.Equal(t, DefaultDataAPIURL, cfg.DataAPIURL)
	assert.Equal(t, DefaultFromEmail, cfg.SendGridFromEmail)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "50051", cfg.GRPCPort)
	assert.Equal(t, 10*time.Second, cfg.GatewayTimeout)
	assert.Equal(t, 10*time.Second, cfg.ProvisioningTimeout)
	assert.Equal(t, 10*time.Second, cfg.EmailTimeout)
	assert.Equal(t, 5*time.Minute, cfg.DataAPICacheTTL)
	assert.Empty(t, cfg.StripeWebhookSecret)
}

func TestLoadConfig_Overrides(t *testing.T) {
	isolate(t)
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_abc")
	t.Setenv("PROVISIONING_TIMEOUT", "3s")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "whsec_abc", cfg.StripeWebhookSecret)
	assert.Equal(t, 3*time.Second, cfg.ProvisioningTimeout)
	assert.Equal(t, "9090", cfg.HTTPPort)
}

func TestLoadConfig_RejectsBadDuration(t *testing.T) {
	isolate(t)
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("EMAIL_TIMEOUT", "soon")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email Timeout")
}

func TestLoadConfig_RejectsNonPositiveDuration(t *testing.T) {
	isolate(t)
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("GATEWAY_TIMEOUT", "0s")

	_, err := LoadConfig()
	require.Error(t, err)
}
