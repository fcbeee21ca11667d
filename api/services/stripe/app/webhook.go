package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bayanlab/bayanlab-commerce/api/logging"
	"github.com/bayanlab/bayanlab-commerce/api/metrics"
	"github.com/bayanlab/bayanlab-commerce/api/services/notification"
	"github.com/bayanlab/bayanlab-commerce/api/services/provisioning"
	stripedb "github.com/bayanlab/bayanlab-commerce/api/services/stripe/db"
)

// HandleEvent acts on a verified event. It never fails the delivery: every failure
// after verification is logged, journaled and acknowledged so Stripe stops retrying.
//
// Deliveries are not deduplicated. A redelivered checkout.session.completed event
// provisions and emails a second time; the journal keeps both rows.
func (s serviceImpl) HandleEvent(ctx context.Context, ev Event) Outcome {
	var (
		outcome Outcome
		detail  string
	)
	logger := logging.FromContext(ctx)
	switch e := ev.(type) {
	case CheckoutCompleted:
		outcome, detail = s.handleCheckoutCompleted(ctx, e)
	case PaymentFailed:
		outcome, detail = OutcomePaymentFailed, e.FailureMessage
		logger.Info().
			Str("event_id", e.ID).
			Str("payment_intent", e.PaymentIntentID).
			Str("reason", e.FailureMessage).
			Msg("Payment failed")
	case Ignored:
		outcome = OutcomeIgnored
		logger.Debug().Str("event_id", e.ID).Str("type", e.Type).Msg("Stripe webhook ignored (unhandled type)")
	case Undecodable:
		outcome, detail = OutcomeUndecodable, errString(e.Err)
		logger.Error().Err(e.Err).Str("event_id", e.ID).Str("type", e.Type).Msg("Stripe event object could not be decoded")
	default:
		outcome = OutcomeIgnored
	}

	s.record(ctx, ev, outcome, detail)
	return outcome
}

func (s serviceImpl) handleCheckoutCompleted(ctx context.Context, e CheckoutCompleted) (Outcome, string) {
	logger := logging.FromContext(ctx).With().
		Str("event_id", e.ID).
		Str("session_id", e.SessionID).
		Logger()

	if err := e.validate(); err != nil {
		logger.Error().Err(err).Msg("Checkout completed without required purchase data")
		return OutcomeIncompleteMetadata, err.Error()
	}

	cred, err := s.issuer.Issue(ctx, provisioning.IssueRequest{
		Email:       e.Email,
		Tier:        e.Tier,
		Datasets:    e.Datasets,
		CustomerRef: e.CustomerRef,
		PaymentRef:  e.PaymentRef,
	})
	if err != nil {
		ev := logger.Error().Err(err).Str("tier", e.Tier)
		var rejected *provisioning.RejectedError
		if errors.As(err, &rejected) {
			ev = ev.Int("status", rejected.Status).Str("body", rejected.Body)
		}
		ev.Msg("API key provisioning failed")
		metrics.ProvisioningTotal.WithLabelValues(provisioningFailureLabel(err)).Inc()
		return OutcomeProvisioningFailed, err.Error()
	}
	metrics.ProvisioningTotal.WithLabelValues("issued").Inc()
	logger.Info().
		Str("tier", e.Tier).
		Strs("datasets", e.Datasets).
		Str("key", logging.Redact(cred.APIKey)).
		Msg("API key provisioned")

	err = s.notifier.SendPurchase(ctx, notification.Purchase{
		To:       e.Email,
		Tier:     e.Tier,
		Datasets: e.Datasets,
		APIKey:   cred.APIKey,
	})
	if err != nil {
		// The key stays issued; support resends it by hand.
		logger.Error().Err(err).Str("to", e.Email).Msg("Purchase email failed")
		metrics.NotificationTotal.WithLabelValues("failed").Inc()
		return OutcomeNotificationFailed, err.Error()
	}
	metrics.NotificationTotal.WithLabelValues("sent").Inc()
	return OutcomeProvisioned, ""
}

func (e CheckoutCompleted) validate() error {
	var missing []string
	if e.Email == "" {
		missing = append(missing, "email")
	}
	if e.Tier == "" {
		missing = append(missing, "tier")
	}
	if len(e.Datasets) == 0 {
		missing = append(missing, "datasets")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrBadEvent, strings.Join(missing, ", "))
	}
	return nil
}

func (s serviceImpl) record(ctx context.Context, ev Event, outcome Outcome, detail string) {
	err := s.journal.Record(ctx, stripedb.Delivery{
		EventID:   ev.EventID(),
		EventType: ev.EventType(),
		Outcome:   string(outcome),
		Detail:    detail,
	})
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("event_id", ev.EventID()).Msg("Failed to journal webhook delivery")
	}
}

func provisioningFailureLabel(err error) string {
	if errors.Is(err, provisioning.ErrProvisioningUnavailable) {
		return "unavailable"
	}
	return "rejected"
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
