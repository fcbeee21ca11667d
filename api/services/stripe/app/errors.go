package app

import "errors"

// Typed errors for the Stripe app layer. These enable HTTP mapping without
// relying on SDK-specific error types at the transport layer.
var (
	// ErrInvalidTier indicates the requested tier is absent or not in the catalog.
	ErrInvalidTier = errors.New("invalid tier")
	// ErrMissingDataset indicates a single-dataset tier was requested without a valid dataset.
	ErrMissingDataset = errors.New("dataset required for developer tier")
	// ErrInvalidEmail indicates a supplied customer email is not a valid address.
	ErrInvalidEmail = errors.New("invalid email")
	// ErrGateway indicates a failure from the Stripe gateway / API calls.
	ErrGateway = errors.New("gateway error")

	// ErrMissingSignature indicates the webhook request carried no Stripe-Signature header.
	ErrMissingSignature = errors.New("missing signature")
	// ErrWebhookNotConfigured indicates no webhook signing secret is configured.
	ErrWebhookNotConfigured = errors.New("webhook not configured")
	// ErrInvalidSignature indicates the signature does not match the payload.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrMalformedEvent indicates the signed payload is not a Stripe event.
	ErrMalformedEvent = errors.New("malformed event")
	// ErrBadEvent indicates the incoming event payload is invalid or missing required fields.
	ErrBadEvent = errors.New("bad event")
)
