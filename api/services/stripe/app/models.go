package app

// CheckoutRequest is the buyer's tier selection. Dataset is only meaningful for
// single-dataset tiers.
type CheckoutRequest struct {
	Tier    string `json:"tier"`
	Dataset string `json:"dataset,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email,max=254"`
}

// CheckoutResponse is the domain response returned by the app layer.
// HTTP layer will translate this into JSON.
type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// Outcome is the terminal state of one webhook delivery. Every outcome is
// acknowledged to Stripe.
type Outcome string

const (
	OutcomeProvisioned        Outcome = "provisioned"
	OutcomeProvisioningFailed Outcome = "provisioning_failed"
	OutcomeNotificationFailed Outcome = "notification_failed"
	OutcomeIncompleteMetadata Outcome = "incomplete_metadata"
	OutcomePaymentFailed      Outcome = "payment_failed"
	OutcomeIgnored            Outcome = "ignored"
	OutcomeUndecodable        Outcome = "undecodable"
)

// Business constants
const (
	Currency = "usd"

	checkoutSubmitMessage = "All sales are final. No refunds on data licenses."
	successPath           = "/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	cancelPath            = "/checkout/cancel"

	metadataTier     = "tier"
	metadataDatasets = "datasets"
)
