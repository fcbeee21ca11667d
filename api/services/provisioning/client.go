package provisioning

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	apiKeysPath = "/v1/internal/api-keys"
	// InternalKeyHeader carries the shared secret for the internal API.
	InternalKeyHeader = "X-Internal-Key"

	errorBodyLimit = 4096
)

var (
	// ErrProvisioningUnavailable indicates the internal shared secret is not configured locally.
	ErrProvisioningUnavailable = errors.New("provisioning unavailable")
	// ErrProvisioningRejected indicates the provisioning service did not issue a key.
	ErrProvisioningRejected = errors.New("provisioning rejected")
)

// IssueRequest is everything the provisioning service needs to mint a key.
type IssueRequest struct {
	Email    string
	Tier     string
	Datasets []string
	// Gateway references; empty when the event did not carry them.
	CustomerRef string
	PaymentRef  string
}

// Credential is the issued key as returned by the provisioning service.
type Credential struct {
	APIKey    string   `json:"api_key"`
	KeyPrefix string   `json:"key_prefix"`
	Tier      string   `json:"tier"`
	Datasets  []string `json:"datasets"`
}

type issueBody struct {
	Email            string   `json:"email"`
	Tier             string   `json:"tier"`
	Datasets         []string `json:"datasets"`
	StripeCustomerID *string  `json:"stripe_customer_id"`
	StripePaymentID  *string  `json:"stripe_payment_id"`
}

// Client calls the BayanLab internal API to mint API keys. It makes exactly one
// attempt per call.
type Client struct {
	baseURL     string
	internalKey string
	httpClient  *http.Client
}

// NewClient creates a provisioning client. An empty internalKey is allowed so the
// process can start; every Issue call then fails with ErrProvisioningUnavailable.
func NewClient(baseURL, internalKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:     strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		internalKey: strings.TrimSpace(internalKey),
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// HTTPClient exposes the underlying client so tests can intercept it.
func (c *Client) HTTPClient() *http.Client { return c.httpClient }

// Issue requests a new API key.
func (c *Client) Issue(ctx context.Context, in IssueRequest) (Credential, error) {
	if c.internalKey == "" {
		return Credential{}, fmt.Errorf("%w: BAYANLAB_INTERNAL_KEY not configured", ErrProvisioningUnavailable)
	}

	body, err := json.Marshal(issueBody{
		Email:            in.Email,
		Tier:             in.Tier,
		Datasets:         in.Datasets,
		StripeCustomerID: optional(in.CustomerRef),
		StripePaymentID:  optional(in.PaymentRef),
	})
	if err != nil {
		return Credential{}, fmt.Errorf("marshal provisioning request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiKeysPath, bytes.NewReader(body))
	if err != nil {
		return Credential{}, fmt.Errorf("create provisioning request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(InternalKeyHeader, c.internalKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: request failed: %v", ErrProvisioningRejected, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return Credential{}, &RejectedError{Status: resp.StatusCode, Body: string(snippet)}
	}

	var out Credential
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Credential{}, fmt.Errorf("%w: decode response: %v", ErrProvisioningRejected, err)
	}
	if strings.TrimSpace(out.APIKey) == "" {
		return Credential{}, fmt.Errorf("%w: response missing api_key", ErrProvisioningRejected)
	}
	return out, nil
}

// RejectedError keeps the remote status and body for diagnostics.
type RejectedError struct {
	Status int
	Body   string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("provisioning rejected: status=%d body=%s", e.Status, e.Body)
}

func (e *RejectedError) Unwrap() error { return ErrProvisioningRejected }

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
