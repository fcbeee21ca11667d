package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Stripe event types the service acts on.
const (
	EventCheckoutSessionCompleted   = "checkout.session.completed"
	EventPaymentIntentPaymentFailed = "payment_intent.payment_failed"
)

// Event is a verified Stripe delivery decoded into the closed set of cases the
// service understands. Adding a case means adding a type here and an arm in
// HandleEvent.
type Event interface {
	EventID() string
	EventType() string
	isEvent()
}

// CheckoutCompleted is a paid checkout session. Fields are copied from the session
// as-is; missing values stay empty.
type CheckoutCompleted struct {
	ID          string
	SessionID   string
	Email       string
	Tier        string
	Datasets    []string
	CustomerRef string
	PaymentRef  string
	AmountTotal int64
}

// PaymentFailed is a declined payment intent. It is logged only.
type PaymentFailed struct {
	ID              string
	PaymentIntentID string
	FailureMessage  string
}

// Ignored is any other event type.
type Ignored struct {
	ID   string
	Type string
}

// Undecodable is a signature-valid event of a known type whose object could not be read.
type Undecodable struct {
	ID   string
	Type string
	Err  error
}

func (e CheckoutCompleted) EventID() string   { return e.ID }
func (e CheckoutCompleted) EventType() string { return EventCheckoutSessionCompleted }
func (CheckoutCompleted) isEvent()            {}

func (e PaymentFailed) EventID() string   { return e.ID }
func (e PaymentFailed) EventType() string { return EventPaymentIntentPaymentFailed }
func (PaymentFailed) isEvent()            {}

func (e Ignored) EventID() string   { return e.ID }
func (e Ignored) EventType() string { return e.Type }
func (Ignored) isEvent()            {}

func (e Undecodable) EventID() string   { return e.ID }
func (e Undecodable) EventType() string { return e.Type }
func (Undecodable) isEvent()            {}

// VerifyEvent checks the Stripe-Signature header against the raw body and decodes the
// event. Nothing in the payload is trusted before this returns nil.
func (s serviceImpl) VerifyEvent(payload []byte, sigHeader string) (Event, error) {
	if strings.TrimSpace(sigHeader) == "" {
		return nil, ErrMissingSignature
	}
	if s.webhookSecret == "" {
		return nil, ErrWebhookNotConfigured
	}

	ev, err := webhook.ConstructEventWithOptions(payload, sigHeader, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		if isSignatureError(err) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	return decodeEvent(ev), nil
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrTooOld)
}

// checkoutSessionObject is the subset of a Checkout Session the service reads.
type checkoutSessionObject struct {
	ID              string            `json:"id"`
	Customer        expandableID      `json:"customer"`
	PaymentIntent   expandableID      `json:"payment_intent"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerDetails *customerDetails  `json:"customer_details"`
	Metadata        map[string]string `json:"metadata"`
	AmountTotal     int64             `json:"amount_total"`
}

type customerDetails struct {
	Email string `json:"email"`
}

type paymentIntentObject struct {
	ID               string `json:"id"`
	LastPaymentError *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"last_payment_error"`
}

// expandableID accepts either a bare Stripe id or an expanded object carrying one.
type expandableID string

func (e *expandableID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*e = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*e = expandableID(s)
		return nil
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*e = expandableID(obj.ID)
	return nil
}

func decodeEvent(ev stripe.Event) Event {
	eventType := string(ev.Type)
	var raw json.RawMessage
	if ev.Data != nil {
		raw = ev.Data.Raw
	}

	switch eventType {
	case EventCheckoutSessionCompleted:
		var sess checkoutSessionObject
		if err := unmarshalObject(raw, &sess); err != nil {
			return Undecodable{ID: ev.ID, Type: eventType, Err: err}
		}
		return checkoutCompletedFrom(ev.ID, sess)

	case EventPaymentIntentPaymentFailed:
		var pi paymentIntentObject
		if err := unmarshalObject(raw, &pi); err != nil {
			return Undecodable{ID: ev.ID, Type: eventType, Err: err}
		}
		out := PaymentFailed{ID: ev.ID, PaymentIntentID: pi.ID}
		if pi.LastPaymentError != nil {
			out.FailureMessage = pi.LastPaymentError.Message
		}
		return out

	default:
		return Ignored{ID: ev.ID, Type: eventType}
	}
}

func unmarshalObject(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: event has no data.object", ErrBadEvent)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadEvent, err)
	}
	return nil
}

func checkoutCompletedFrom(eventID string, sess checkoutSessionObject) CheckoutCompleted {
	email := strings.TrimSpace(sess.CustomerEmail)
	if email == "" && sess.CustomerDetails != nil {
		email = strings.TrimSpace(sess.CustomerDetails.Email)
	}
	return CheckoutCompleted{
		ID:          eventID,
		SessionID:   sess.ID,
		Email:       email,
		Tier:        strings.TrimSpace(sess.Metadata[metadataTier]),
		Datasets:    splitDatasets(sess.Metadata[metadataDatasets]),
		CustomerRef: string(sess.Customer),
		PaymentRef:  string(sess.PaymentIntent),
		AmountTotal: sess.AmountTotal,
	}
}

// splitDatasets parses the comma-joined metadata value, dropping blanks.
func splitDatasets(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
