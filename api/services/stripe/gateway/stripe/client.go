package stripegw

import (
	"context"
	"errors"
	"net/http"
	"time"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	gw "github.com/bayanlab/bayanlab-commerce/api/services/stripe/gateway"
)

// stripeClient is the Stripe SDK-backed implementation of the gateway.
type stripeClient struct {
	api *client.API
}

// New returns a StripeGateway backed by the official Stripe SDK. Every call is a
// single attempt bounded by timeout; the SDK's own network retries are disabled.
func New(secretKey string, timeout time.Duration) (gw.StripeGateway, error) {
	if secretKey == "" {
		return nil, errors.New("stripe secret key is not configured")
	}
	backends := stripe.NewBackendsWithConfig(&stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: timeout},
		MaxNetworkRetries: stripe.Int64(0),
	})
	api := &client.API{}
	api.Init(secretKey, backends)
	return stripeClient{api: api}, nil
}

func (c stripeClient) CreateCheckoutSession(ctx context.Context, in gw.CheckoutSessionInput) (gw.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(in.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(in.ProductName),
						Description: stripe.String(in.ProductDescription),
					},
					UnitAmount: stripe.Int64(in.Amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:               stripe.String(in.SuccessURL),
		CancelURL:                stripe.String(in.CancelURL),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
	}
	if in.SubmitMessage != "" {
		params.CustomText = &stripe.CheckoutSessionCustomTextParams{
			Submit: &stripe.CheckoutSessionCustomTextSubmitParams{
				Message: stripe.String(in.SubmitMessage),
			},
		}
	}
	if in.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(in.CustomerEmail)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return gw.CheckoutSession{}, err
	}
	if sess == nil {
		return gw.CheckoutSession{}, errors.New("stripe returned no checkout session")
	}
	return gw.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}
