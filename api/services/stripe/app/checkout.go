package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/bayanlab/bayanlab-commerce/api/metrics"
	"github.com/bayanlab/bayanlab-commerce/api/services/catalog"
	gw "github.com/bayanlab/bayanlab-commerce/api/services/stripe/gateway"
)

// CreateCheckout validates the selection against the catalog and opens exactly one
// hosted checkout session. Granted datasets always come from the catalog.
func (s serviceImpl) CreateCheckout(ctx context.Context, req CheckoutRequest) (CheckoutResponse, error) {
	req.Tier = strings.TrimSpace(req.Tier)
	req.Dataset = strings.TrimSpace(req.Dataset)
	req.Email = strings.TrimSpace(req.Email)

	grant, err := catalog.Resolve(req.Tier, req.Dataset)
	switch {
	case errors.Is(err, catalog.ErrUnknownTier):
		metrics.CheckoutRequestsTotal.WithLabelValues("unknown", "invalid_tier").Inc()
		return CheckoutResponse{}, fmt.Errorf("%w: %q", ErrInvalidTier, req.Tier)
	case errors.Is(err, catalog.ErrDatasetRequired):
		metrics.CheckoutRequestsTotal.WithLabelValues(req.Tier, "missing_dataset").Inc()
		return CheckoutResponse{}, fmt.Errorf("%w: %q", ErrMissingDataset, req.Dataset)
	case err != nil:
		return CheckoutResponse{}, err
	}

	if err := s.validate.Struct(req); err != nil {
		metrics.CheckoutRequestsTotal.WithLabelValues(req.Tier, "invalid_email").Inc()
		return CheckoutResponse{}, fmt.Errorf("%w: %v", ErrInvalidEmail, err)
	}

	tierID := string(grant.Tier.ID)
	sess, err := s.gw.CreateCheckoutSession(ctx, s.sessionInput(grant, req.Email))
	if err != nil {
		metrics.CheckoutRequestsTotal.WithLabelValues(tierID, "gateway_error").Inc()
		log.Error().Err(err).Str("tier", tierID).Msg("Stripe checkout session creation failed")
		return CheckoutResponse{}, fmt.Errorf("%w: error creating checkout session: %v", ErrGateway, err)
	}

	metrics.CheckoutRequestsTotal.WithLabelValues(tierID, "created").Inc()
	log.Info().
		Str("session_id", sess.ID).
		Str("tier", tierID).
		Strs("datasets", grant.DatasetIDs()).
		Msg("Checkout session created")
	return CheckoutResponse{SessionID: sess.ID, URL: sess.URL}, nil
}

func (s serviceImpl) sessionInput(grant catalog.Grant, email string) gw.CheckoutSessionInput {
	return gw.CheckoutSessionInput{
		ProductName:        fmt.Sprintf("BayanLab %s License", grant.Tier.Name),
		ProductDescription: fmt.Sprintf("Access to: %s. 1 year of updates included.", strings.Join(grant.DatasetNames(), ", ")),
		Currency:           Currency,
		Amount:             grant.Tier.Price,
		CustomerEmail:      email,
		SuccessURL:         s.baseURL + successPath,
		CancelURL:          s.baseURL + cancelPath,
		SubmitMessage:      checkoutSubmitMessage,
		Metadata: map[string]string{
			metadataTier:     string(grant.Tier.ID),
			metadataDatasets: strings.Join(grant.DatasetIDs(), ","),
		},
	}
}
