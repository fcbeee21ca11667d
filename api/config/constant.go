package config

import (
	"log"
	"strings"
)

const (
	// ProdDbId is the identifier for the production journal database
	ProdDbId = "bayanlab-prod"

	// LiveKeyPrefix marks Stripe secret keys that move real money.
	LiveKeyPrefix = "sk_live_"

	DefaultBaseURL        = "http://localhost:3000"
	DefaultBayanLabAPIURL = "https://api.bayanlab.com"
	DefaultDataAPIURL     = "http://localhost:8000"
	DefaultFromEmail      = "hud@multimodeai.com"
	DefaultTimeout        = "10s"
	// Matches the directory pages' five minute revalidation window.
	DefaultCacheTTL = "5m"
)

// CheckNotLiveKey aborts immediately if the loaded configuration points at live
// Stripe credentials or the production journal database.
// This should be called at the start of any test that talks to Stripe or Postgres.
func CheckNotLiveKey() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if strings.HasPrefix(cfg.StripeSecretKey, LiveKeyPrefix) {
		log.Fatal("Tests aborted: STRIPE_SECRET_KEY is a live key")
	}
	if strings.Contains(cfg.DatabaseURL, ProdDbId) {
		log.Fatalf("Tests aborted: DatabaseURL contains production identifier %s", ProdDbId)
	}
}
