package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/bayanlab/bayanlab-commerce/api/logging"
	"github.com/bayanlab/bayanlab-commerce/api/services/notification"
	"github.com/bayanlab/bayanlab-commerce/api/services/provisioning"
	"github.com/bayanlab/bayanlab-commerce/api/services/stripe/app"
	stripedb "github.com/bayanlab/bayanlab-commerce/api/services/stripe/db"
	gw "github.com/bayanlab/bayanlab-commerce/api/services/stripe/gateway"
)

const testSecret = "whsec_test_secret"

func sign(t *testing.T, payload []byte) string {
	t.Helper()
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    testSecret,
		Timestamp: time.Now(),
		Scheme:    "v1",
	})
	return signed.Header
}

func eventJSON(t *testing.T, id, eventType string, object map[string]any) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"id":     id,
		"object": "event",
		"type":   eventType,
		"data":   map[string]any{"object": object},
	})
	require.NoError(t, err)
	return b
}

func sessionObject(email string, metadata map[string]string) map[string]any {
	return map[string]any{
		"id":             "cs_test_123",
		"object":         "checkout.session",
		"customer":       "cus_123",
		"payment_intent": "pi_456",
		"customer_email": email,
		"amount_total":   24900,
		"metadata":       metadata,
	}
}

// verify runs the signed payload through VerifyEvent and fails the test on error.
func verify(t *testing.T, svc app.Service, payload []byte) app.Event {
	t.Helper()
	ev, err := svc.VerifyEvent(payload, sign(t, payload))
	require.NoError(t, err)
	return ev
}

type outcomeMatcher app.Outcome

func (m outcomeMatcher) Matches(x interface{}) bool {
	d, ok := x.(stripedb.Delivery)
	return ok && d.Outcome == string(m) && d.EventID != ""
}

func (m outcomeMatcher) String() string { return "delivery with outcome " + string(m) }

func expectJournal(d deps, outcome app.Outcome) {
	d.journal.EXPECT().Record(gomock.Any(), outcomeMatcher(outcome)).Return(nil).Times(1)
}

func TestVerifyEvent_TamperedBody(t *testing.T) {
	svc, _ := newService(t)
	original := eventJSON(t, "evt_1", app.EventCheckoutSessionCompleted,
		sessionObject("a@example.com", map[string]string{"tier": "developer", "datasets": "masajid"}))
	tampered := eventJSON(t, "evt_1", app.EventCheckoutSessionCompleted,
		sessionObject("a@example.com", map[string]string{"tier": "complete", "datasets": "masajid,eateries,markets,businesses"}))

	ev, err := svc.VerifyEvent(tampered, sign(t, original))
	assert.ErrorIs(t, err, app.ErrInvalidSignature)
	assert.Nil(t, ev)
}

func TestVerifyEvent_Rejections(t *testing.T) {
	payload := eventJSON(t, "evt_1", "customer.created", map[string]any{"id": "cus_1"})

	t.Run("missing signature", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.VerifyEvent(payload, "")
		assert.ErrorIs(t, err, app.ErrMissingSignature)
	})
	t.Run("garbage header", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.VerifyEvent(payload, "not-a-signature")
		assert.ErrorIs(t, err, app.ErrInvalidSignature)
	})
	t.Run("wrong secret", func(t *testing.T) {
		svc, _ := newService(t)
		signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
			Payload: payload, Secret: "whsec_other", Timestamp: time.Now(), Scheme: "v1",
		})
		_, err := svc.VerifyEvent(payload, signed.Header)
		assert.ErrorIs(t, err, app.ErrInvalidSignature)
	})
	t.Run("expired timestamp", func(t *testing.T) {
		svc, _ := newService(t)
		signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
			Payload: payload, Secret: testSecret, Timestamp: time.Now().Add(-time.Hour), Scheme: "v1",
		})
		_, err := svc.VerifyEvent(payload, signed.Header)
		assert.ErrorIs(t, err, app.ErrInvalidSignature)
	})
	t.Run("secret not configured", func(t *testing.T) {
		svc := app.NewService(app.Options{BaseURL: testBaseURL}, nil, nil, nil, nil)
		_, err := svc.VerifyEvent(payload, sign(t, payload))
		assert.ErrorIs(t, err, app.ErrWebhookNotConfigured)
	})
	t.Run("signed but not an event", func(t *testing.T) {
		svc, _ := newService(t)
		body := []byte("not json at all")
		_, err := svc.VerifyEvent(body, sign(t, body))
		assert.ErrorIs(t, err, app.ErrMalformedEvent)
	})
}

func TestVerifyEvent_DecodesCheckoutCompleted(t *testing.T) {
	svc, _ := newService(t)
	obj := sessionObject("", map[string]string{"tier": "complete", "datasets": "masajid, eateries,,markets,businesses"})
	obj["customer_details"] = map[string]any{"email": "details@example.com"}
	obj["customer"] = map[string]any{"id": "cus_expanded", "object": "customer"}

	ev := verify(t, svc, eventJSON(t, "evt_decode", app.EventCheckoutSessionCompleted, obj))

	cc, ok := ev.(app.CheckoutCompleted)
	require.True(t, ok, "got %T", ev)
	assert.Equal(t, "evt_decode", cc.EventID())
	assert.Equal(t, "details@example.com", cc.Email)
	assert.Equal(t, "complete", cc.Tier)
	assert.Equal(t, []string{"masajid", "eateries", "markets", "businesses"}, cc.Datasets)
	assert.Equal(t, "cus_expanded", cc.CustomerRef)
	assert.Equal(t, "pi_456", cc.PaymentRef)
	assert.Equal(t, int64(24900), cc.AmountTotal)
}

func TestHandleEvent_MissingTierSkipsProvisioning(t *testing.T) {
	svc, d := newService(t)
	expectJournal(d, app.OutcomeIncompleteMetadata)

	ev := verify(t, svc, eventJSON(t, "evt_no_tier", app.EventCheckoutSessionCompleted,
		sessionObject("a@example.com", map[string]string{"datasets": "masajid"})))

	assert.Equal(t, app.OutcomeIncompleteMetadata, svc.HandleEvent(context.Background(), ev))
}

func TestHandleEvent_MissingEmailSkipsProvisioning(t *testing.T) {
	svc, d := newService(t)
	expectJournal(d, app.OutcomeIncompleteMetadata)

	ev := verify(t, svc, eventJSON(t, "evt_no_email", app.EventCheckoutSessionCompleted,
		sessionObject("", map[string]string{"tier": "developer", "datasets": "masajid"})))

	assert.Equal(t, app.OutcomeIncompleteMetadata, svc.HandleEvent(context.Background(), ev))
}

func TestHandleEvent_ProvisioningFailureSkipsEmail(t *testing.T) {
	svc, d := newService(t)
	d.issuer.EXPECT().
		Issue(gomock.Any(), gomock.Any()).
		Return(provisioning.Credential{}, &provisioning.RejectedError{Status: 500, Body: "boom"}).
		Times(1)
	expectJournal(d, app.OutcomeProvisioningFailed)

	ev := verify(t, svc, eventJSON(t, "evt_prov_fail", app.EventCheckoutSessionCompleted,
		sessionObject("a@example.com", map[string]string{"tier": "developer", "datasets": "masajid"})))

	assert.Equal(t, app.OutcomeProvisioningFailed, svc.HandleEvent(context.Background(), ev))
}

func TestHandleEvent_EmailFailureKeepsCredential(t *testing.T) {
	svc, d := newService(t)
	d.issuer.EXPECT().
		Issue(gomock.Any(), gomock.Any()).
		Return(provisioning.Credential{APIKey: "bl_live_0123456789abcdefghijkl"}, nil).
		Times(1)
	d.notifier.EXPECT().
		SendPurchase(gomock.Any(), gomock.Any()).
		Return(notification.ErrNotificationFailed).
		Times(1)
	expectJournal(d, app.OutcomeNotificationFailed)

	ev := verify(t, svc, eventJSON(t, "evt_mail_fail", app.EventCheckoutSessionCompleted,
		sessionObject("a@example.com", map[string]string{"tier": "developer", "datasets": "masajid"})))

	assert.Equal(t, app.OutcomeNotificationFailed, svc.HandleEvent(context.Background(), ev))
}

// Redelivery is not deduplicated: the same event id provisions twice. This pins
// the current behaviour until an idempotency store exists.
func TestHandleEvent_RedeliveryProvisionsTwice(t *testing.T) {
	svc, d := newService(t)
	want := provisioning.IssueRequest{
		Email:       "a@example.com",
		Tier:        "developer",
		Datasets:    []string{"masajid"},
		CustomerRef: "cus_123",
		PaymentRef:  "pi_456",
	}
	d.issuer.EXPECT().
		Issue(gomock.Any(), want).
		Return(provisioning.Credential{APIKey: "bl_live_0123456789abcdefghijkl"}, nil).
		Times(2)
	d.notifier.EXPECT().SendPurchase(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	d.journal.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	payload := eventJSON(t, "evt_dup", app.EventCheckoutSessionCompleted,
		sessionObject("a@example.com", map[string]string{"tier": "developer", "datasets": "masajid"}))
	for i := 0; i < 2; i++ {
		ev := verify(t, svc, payload)
		assert.Equal(t, app.OutcomeProvisioned, svc.HandleEvent(context.Background(), ev))
	}
}

func TestHandleEvent_PaymentFailedAndIgnored(t *testing.T) {
	svc, d := newService(t)
	expectJournal(d, app.OutcomePaymentFailed)
	ev := verify(t, svc, eventJSON(t, "evt_pf", app.EventPaymentIntentPaymentFailed, map[string]any{
		"id":                 "pi_789",
		"object":             "payment_intent",
		"last_payment_error": map[string]any{"code": "card_declined", "message": "Your card was declined."},
	}))
	pf, ok := ev.(app.PaymentFailed)
	require.True(t, ok, "got %T", ev)
	assert.Equal(t, "pi_789", pf.PaymentIntentID)
	assert.Equal(t, app.OutcomePaymentFailed, svc.HandleEvent(context.Background(), ev))

	expectJournal(d, app.OutcomeIgnored)
	ev = verify(t, svc, eventJSON(t, "evt_other", "customer.created", map[string]any{"id": "cus_1"}))
	assert.IsType(t, app.Ignored{}, ev)
	assert.Equal(t, app.OutcomeIgnored, svc.HandleEvent(context.Background(), ev))
}

func TestHandleEvent_UndecodableObjectIsAcknowledged(t *testing.T) {
	svc, d := newService(t)
	expectJournal(d, app.OutcomeUndecodable)

	obj := sessionObject("a@example.com", map[string]string{"tier": "developer", "datasets": "masajid"})
	obj["amount_total"] = "lots"
	ev := verify(t, svc, eventJSON(t, "evt_bad_obj", app.EventCheckoutSessionCompleted, obj))

	assert.IsType(t, app.Undecodable{}, ev)
	assert.Equal(t, app.OutcomeUndecodable, svc.HandleEvent(context.Background(), ev))
}

func TestHandleEvent_JournalFailureDoesNotChangeOutcome(t *testing.T) {
	svc, d := newService(t)
	d.journal.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("db down")).Times(1)

	ev := verify(t, svc, eventJSON(t, "evt_j", "invoice.paid", map[string]any{"id": "in_1"}))
	assert.Equal(t, app.OutcomeIgnored, svc.HandleEvent(context.Background(), ev))
}

func TestCheckoutToWebhook_CompleteTier(t *testing.T) {
	svc, d := newService(t)

	var in gw.CheckoutSessionInput
	captureSession(d, &in)
	_, err := svc.CreateCheckout(context.Background(), app.CheckoutRequest{Tier: "complete", Email: "a@example.com"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"tier": "complete", "datasets": "masajid,eateries,markets,businesses"}, in.Metadata)

	allDatasets := []string{"masajid", "eateries", "markets", "businesses"}
	d.issuer.EXPECT().
		Issue(gomock.Any(), provisioning.IssueRequest{
			Email:       "a@example.com",
			Tier:        "complete",
			Datasets:    allDatasets,
			CustomerRef: "cus_123",
			PaymentRef:  "pi_456",
		}).
		Return(provisioning.Credential{APIKey: "bl_live_0123456789abcdefghijkl", Tier: "complete", Datasets: allDatasets}, nil).
		Times(1)
	d.notifier.EXPECT().
		SendPurchase(gomock.Any(), notification.Purchase{
			To:       "a@example.com",
			Tier:     "complete",
			Datasets: allDatasets,
			APIKey:   "bl_live_0123456789abcdefghijkl",
		}).
		Return(nil).
		Times(1)
	expectJournal(d, app.OutcomeProvisioned)

	metadata := map[string]string{}
	for k, v := range in.Metadata {
		metadata[k] = v
	}
	ev := verify(t, svc, eventJSON(t, "evt_e2e", app.EventCheckoutSessionCompleted, sessionObject("a@example.com", metadata)))
	assert.Equal(t, app.OutcomeProvisioned, svc.HandleEvent(context.Background(), ev))
}

func TestHandleEvent_LogsCarryRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	t.Cleanup(func() { log.Logger = prev })

	svc, d := newService(t)
	ctx := logging.WithRequestID(context.Background(), "req-pf-1")

	expectJournal(d, app.OutcomePaymentFailed)
	svc.HandleEvent(ctx, app.PaymentFailed{ID: "evt_pf_log", PaymentIntentID: "pi_1", FailureMessage: "declined"})

	expectJournal(d, app.OutcomeIgnored)
	svc.HandleEvent(ctx, app.Ignored{ID: "evt_ig_log", Type: "customer.created"})

	expectJournal(d, app.OutcomeUndecodable)
	svc.HandleEvent(ctx, app.Undecodable{ID: "evt_un_log", Type: app.EventCheckoutSessionCompleted, Err: errors.New("bad object")})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Contains(t, line, `"request_id":"req-pf-1"`)
	}
}
