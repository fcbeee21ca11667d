package provisioning_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/h2non/gock.v1"

	"github.com/bayanlab/bayanlab-commerce/api/services/provisioning"
)

const apiURI = "https://api.bayanlab.test"

func newClient(t *testing.T, key string) *provisioning.Client {
	t.Helper()
	cl := provisioning.NewClient(apiURI+"/", key, 5*time.Second)
	gock.InterceptClient(cl.HTTPClient())
	t.Cleanup(func() {
		gock.RestoreClient(cl.HTTPClient())
		gock.Off()
	})
	return cl
}

func TestIssue_Success(t *testing.T) {
	cl := newClient(t, "internal-secret")

	gock.New(apiURI).
		Post("/v1/internal/api-keys").
		MatchHeader("X-Internal-Key", "internal-secret").
		MatchType("json").
		JSON(map[string]any{
			"email":              "a@example.com",
			"tier":               "complete",
			"datasets":           []string{"masajid", "eateries", "markets", "businesses"},
			"stripe_customer_id": "cus_123",
			"stripe_payment_id":  "pi_456",
		}).
		Reply(201).
		JSON(map[string]any{
			"api_key":    "bl_live_abcdefghijklmnopqrstuvwxyz",
			"key_prefix": "bl_live_abcd",
			"tier":       "complete",
			"datasets":   []string{"masajid", "eateries", "markets", "businesses"},
		})

	cred, err := cl.Issue(context.Background(), provisioning.IssueRequest{
		Email:       "a@example.com",
		Tier:        "complete",
		Datasets:    []string{"masajid", "eateries", "markets", "businesses"},
		CustomerRef: "cus_123",
		PaymentRef:  "pi_456",
	})
	require.NoError(t, err)
	assert.Equal(t, "bl_live_abcdefghijklmnopqrstuvwxyz", cred.APIKey)
	assert.Equal(t, "bl_live_abcd", cred.KeyPrefix)
	assert.True(t, gock.IsDone())
}

func TestIssue_NullGatewayRefs(t *testing.T) {
	cl := newClient(t, "internal-secret")

	gock.New(apiURI).
		Post("/v1/internal/api-keys").
		JSON(map[string]any{
			"email":              "a@example.com",
			"tier":               "developer",
			"datasets":           []string{"masajid"},
			"stripe_customer_id": nil,
			"stripe_payment_id":  nil,
		}).
		Reply(200).
		JSON(map[string]any{"api_key": "k", "key_prefix": "k", "tier": "developer", "datasets": []string{"masajid"}})

	_, err := cl.Issue(context.Background(), provisioning.IssueRequest{
		Email: "a@example.com", Tier: "developer", Datasets: []string{"masajid"},
	})
	require.NoError(t, err)
	assert.True(t, gock.IsDone())
}

func TestIssue_MissingInternalKey(t *testing.T) {
	cl := newClient(t, "")

	_, err := cl.Issue(context.Background(), provisioning.IssueRequest{Email: "a@example.com"})
	assert.ErrorIs(t, err, provisioning.ErrProvisioningUnavailable)
	assert.False(t, gock.HasUnmatchedRequest())
}

func TestIssue_RejectedKeepsStatusAndBody(t *testing.T) {
	cl := newClient(t, "internal-secret")

	gock.New(apiURI).
		Post("/v1/internal/api-keys").
		Reply(409).
		BodyString(`{"detail":"key already exists"}`)

	_, err := cl.Issue(context.Background(), provisioning.IssueRequest{Email: "a@example.com", Tier: "developer", Datasets: []string{"masajid"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, provisioning.ErrProvisioningRejected)

	var rejected *provisioning.RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, 409, rejected.Status)
	assert.Contains(t, rejected.Body, "key already exists")
}

func TestIssue_EmptyKeyIsRejected(t *testing.T) {
	cl := newClient(t, "internal-secret")

	gock.New(apiURI).
		Post("/v1/internal/api-keys").
		Reply(200).
		JSON(map[string]any{"api_key": "", "tier": "developer"})

	_, err := cl.Issue(context.Background(), provisioning.IssueRequest{Email: "a@example.com"})
	assert.ErrorIs(t, err, provisioning.ErrProvisioningRejected)
}

func TestIssue_TransportError(t *testing.T) {
	cl := newClient(t, "internal-secret")

	gock.New(apiURI).
		Post("/v1/internal/api-keys").
		ReplyError(errors.New("connection refused"))

	_, err := cl.Issue(context.Background(), provisioning.IssueRequest{Email: "a@example.com"})
	assert.ErrorIs(t, err, provisioning.ErrProvisioningRejected)
}
