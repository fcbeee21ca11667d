package app

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bayanlab/bayanlab-commerce/api/services/notification"
	"github.com/bayanlab/bayanlab-commerce/api/services/provisioning"
	stripedb "github.com/bayanlab/bayanlab-commerce/api/services/stripe/db"
	gw "github.com/bayanlab/bayanlab-commerce/api/services/stripe/gateway"
)

//go:generate mockgen -destination=mock_app/mock_app.go -package=mock_app github.com/bayanlab/bayanlab-commerce/api/services/stripe/app KeyIssuer,Notifier,Journal
//go:generate mockgen -destination=mock_app/mock_gateway.go -package=mock_app github.com/bayanlab/bayanlab-commerce/api/services/stripe/gateway StripeGateway

// Service defines the business operations for the Stripe domain.
type Service interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (CheckoutResponse, error)
	VerifyEvent(payload []byte, sigHeader string) (Event, error)
	HandleEvent(ctx context.Context, ev Event) Outcome
}

// KeyIssuer mints API keys for paid checkouts.
type KeyIssuer interface {
	Issue(ctx context.Context, in provisioning.IssueRequest) (provisioning.Credential, error)
}

// Notifier sends the purchase confirmation carrying the issued key.
type Notifier interface {
	SendPurchase(ctx context.Context, p notification.Purchase) error
}

// Journal records what happened to each signature-valid delivery.
type Journal interface {
	Record(ctx context.Context, d stripedb.Delivery) error
}

type nopJournal struct{}

func (nopJournal) Record(context.Context, stripedb.Delivery) error { return nil }

// Options are the plain configuration values the service needs.
type Options struct {
	BaseURL       string
	WebhookSecret string
}

// serviceImpl is a concrete implementation. All collaborators are built once at
// start-up and injected.
type serviceImpl struct {
	gw            gw.StripeGateway
	issuer        KeyIssuer
	notifier      Notifier
	journal       Journal
	baseURL       string
	webhookSecret string
	validate      *validator.Validate
}

// NewService wires the Stripe domain. A nil journal disables delivery recording.
func NewService(opts Options, g gw.StripeGateway, issuer KeyIssuer, notifier Notifier, journal Journal) Service {
	if journal == nil {
		journal = nopJournal{}
	}
	return serviceImpl{
		gw:            g,
		issuer:        issuer,
		notifier:      notifier,
		journal:       journal,
		baseURL:       strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		webhookSecret: strings.TrimSpace(opts.WebhookSecret),
		validate:      validator.New(),
	}
}
