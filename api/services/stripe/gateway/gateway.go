package gateway

import "context"

// CheckoutSessionInput describes a one-off hosted checkout for a single license.
// Amount is in minor currency units.
type CheckoutSessionInput struct {
	ProductName        string
	ProductDescription string
	Currency           string
	Amount             int64
	CustomerEmail      string
	SuccessURL         string
	CancelURL          string
	SubmitMessage      string
	// Returned unmodified on the checkout.session.completed event.
	Metadata map[string]string
}

// CheckoutSession is the part of the created session the caller needs.
type CheckoutSession struct {
	ID  string
	URL string
}

// StripeGateway abstracts Stripe SDK operations needed by the app layer.
// Methods return values (not pointers) to respect the project's preference
// to avoid pointer types in public interfaces.
type StripeGateway interface {
	CreateCheckoutSession(ctx context.Context, in CheckoutSessionInput) (CheckoutSession, error)
}
