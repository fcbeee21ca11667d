// Package bootstrap builds every client once from validated configuration and
// wires them into the services.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/health"

	"github.com/bayanlab/bayanlab-commerce/api/config"
	"github.com/bayanlab/bayanlab-commerce/api/database"
	"github.com/bayanlab/bayanlab-commerce/api/router"
	"github.com/bayanlab/bayanlab-commerce/api/server"
	"github.com/bayanlab/bayanlab-commerce/api/services/dataapi"
	"github.com/bayanlab/bayanlab-commerce/api/services/notification"
	"github.com/bayanlab/bayanlab-commerce/api/services/provisioning"
	stripeapp "github.com/bayanlab/bayanlab-commerce/api/services/stripe/app"
	stripedb "github.com/bayanlab/bayanlab-commerce/api/services/stripe/db"
	stripegw "github.com/bayanlab/bayanlab-commerce/api/services/stripe/gateway/stripe"
)

// App is the fully wired process.
type App struct {
	Config  *config.Config
	Stripe  stripeapp.Service
	Handler http.Handler
	Health  *health.Server
	Journal *stripedb.Journal

	db *sql.DB
}

// New constructs every dependency. Missing optional settings degrade features
// instead of failing: no webhook secret rejects webhooks, no SendGrid key logs
// emails, no DATABASE_URL disables the journal.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	gateway, err := stripegw.New(cfg.StripeSecretKey, cfg.GatewayTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe gateway: %w", err)
	}

	issuer := provisioning.NewClient(cfg.BayanLabAPIURL, cfg.BayanLabInternalKey, cfg.ProvisioningTimeout)
	if cfg.BayanLabInternalKey == "" {
		log.Warn().Msg("BAYANLAB_INTERNAL_KEY not configured, paid checkouts will not be provisioned")
	}
	if cfg.StripeWebhookSecret == "" {
		log.Warn().Msg("STRIPE_WEBHOOK_SECRET not configured, webhooks will be rejected")
	}

	var notifier notification.Sender
	if cfg.SendGridAPIKey != "" {
		notifier = notification.NewSendGridSender(cfg.SendGridAPIKey, cfg.SendGridFromEmail, cfg.EmailTimeout)
	} else {
		notifier = notification.NewLogSender(nil)
	}

	a := &App{Config: cfg, Health: health.NewServer()}

	var journal stripeapp.Journal
	if cfg.DatabaseURL != "" {
		db, err := database.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize journal database: %w", err)
		}
		j := stripedb.NewJournal(db)
		if err := j.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		a.db, a.Journal, journal = db, j, j
	}

	a.Stripe = stripeapp.NewService(stripeapp.Options{
		BaseURL:       cfg.BaseURL,
		WebhookSecret: cfg.StripeWebhookSecret,
	}, gateway, issuer, notifier, journal)

	data := dataapi.NewClient(cfg.DataAPIURL, cfg.BayanLabAPIKey, cfg.DataAPITimeout)
	a.Handler, err = router.NewRouter(router.Deps{
		Stripe:    a.Stripe,
		Directory: dataapi.NewDirectory(dataapi.NewCachingSource(data, cfg.DataAPICacheTTL)),
		Samples:   data,
		Health:    a.Health,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// Run serves HTTP and gRPC until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	srv := server.New(
		net.JoinHostPort("", a.Config.HTTPPort),
		net.JoinHostPort("", a.Config.GRPCPort),
		a.Handler,
		a.Health,
	)
	return srv.Run(ctx)
}

// Close releases the journal database, if any.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}
