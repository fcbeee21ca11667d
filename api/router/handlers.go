package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/bayanlab/bayanlab-commerce/api/logging"
	"github.com/bayanlab/bayanlab-commerce/api/metrics"
	"github.com/bayanlab/bayanlab-commerce/api/services/catalog"
	"github.com/bayanlab/bayanlab-commerce/api/services/dataapi"
	stripeapp "github.com/bayanlab/bayanlab-commerce/api/services/stripe/app"
)

const (
	webhookBodyLimit  = 1 << 20
	checkoutBodyLimit = 64 << 10

	stripeSignatureHeader = "Stripe-Signature"
)

type errorResponse struct {
	Error string `json:"error"`
}

type receivedResponse struct {
	Received bool `json:"received"`
}

type catalogResponse struct {
	Tiers    []catalog.Tier    `json:"tiers"`
	Datasets []catalog.Dataset `json:"datasets"`
}

type samplesResponse struct {
	Dataset string                `json:"dataset"`
	Region  string                `json:"region,omitempty"`
	Items   []dataapi.PreviewItem `json:"items"`
}

type handlers struct {
	deps Deps
}

func (h handlers) checkout(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req stripeapp.CheckoutRequest
	r.Body = http.MaxBytesReader(w, r.Body, checkoutBodyLimit)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.deps.Stripe.CreateCheckout(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, stripeapp.ErrInvalidTier):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: `Invalid tier. Must be "developer" or "complete".`})
	case errors.Is(err, stripeapp.ErrMissingDataset):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Dataset required for developer tier."})
	case errors.Is(err, stripeapp.ErrInvalidEmail):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid email address."})
	default:
		logging.FromContext(r.Context()).Error().Err(err).Msg("Checkout error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to create checkout session"})
	}
}

func (h handlers) webhook(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	start := time.Now()
	eventType, status := "unverified", http.StatusOK
	defer func() {
		metrics.WebhookRequestsTotal.WithLabelValues(eventType, strconv.Itoa(status)).Inc()
		metrics.WebhookDuration.WithLabelValues(eventType).Observe(time.Since(start).Seconds())
	}()
	logger := logging.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, webhookBodyLimit)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		status = http.StatusBadRequest
		logger.Warn().Err(err).Msg("Stripe webhook body unreadable")
		writeJSON(w, status, errorResponse{Error: "Invalid payload"})
		return
	}

	ev, err := h.deps.Stripe.VerifyEvent(payload, r.Header.Get(stripeSignatureHeader))
	if err != nil {
		status = webhookErrorStatus(err)
		msg := webhookErrorMessage(err)
		if status == http.StatusInternalServerError {
			logger.Error().Err(err).Msg("Stripe webhook rejected")
		} else {
			logger.Warn().Err(err).Str("remote_addr", r.RemoteAddr).Msg("Stripe webhook rejected")
		}
		writeJSON(w, status, errorResponse{Error: msg})
		return
	}

	eventType = metricEventType(ev)
	// Past verification the work runs to completion even if Stripe hangs up; each
	// outbound call is bounded by its own client timeout.
	outcome := h.deps.Stripe.HandleEvent(context.WithoutCancel(r.Context()), ev)
	logger.Info().
		Str("event_id", ev.EventID()).
		Str("type", ev.EventType()).
		Str("outcome", string(outcome)).
		Msg("Stripe webhook processed")
	writeJSON(w, status, receivedResponse{Received: true})
}

func webhookErrorStatus(err error) int {
	if errors.Is(err, stripeapp.ErrWebhookNotConfigured) {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

func webhookErrorMessage(err error) string {
	switch {
	case errors.Is(err, stripeapp.ErrMissingSignature):
		return "Missing signature"
	case errors.Is(err, stripeapp.ErrWebhookNotConfigured):
		return "Webhook not configured"
	case errors.Is(err, stripeapp.ErrInvalidSignature):
		return "Invalid signature"
	default:
		return "Invalid payload"
	}
}

// metricEventType keeps the label set bounded to the event types we act on.
func metricEventType(ev stripeapp.Event) string {
	switch ev.(type) {
	case stripeapp.CheckoutCompleted, stripeapp.PaymentFailed:
		return ev.EventType()
	case stripeapp.Undecodable:
		return "undecodable"
	default:
		return "other"
	}
}

func (h handlers) catalog(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	writeJSON(w, http.StatusOK, catalogResponse{Tiers: catalog.Tiers(), Datasets: catalog.Datasets()})
}

func (h handlers) directory(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	writeJSON(w, http.StatusOK, h.deps.Directory.Overview(r.Context()))
}

func (h handlers) directoryState(w http.ResponseWriter, r *http.Request, params map[string]string) {
	view, err := h.deps.Directory.State(r.Context(), params["state"])
	if errors.Is(err, dataapi.ErrUnknownRegion) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "State not found"})
		return
	}
	if err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("Directory state failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "Directory unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h handlers) samples(w http.ResponseWriter, r *http.Request, params map[string]string) {
	ds, ok := catalog.LookupDataset(params["dataset"])
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Dataset not found"})
		return
	}
	q := r.URL.Query()
	region := strings.ToUpper(strings.TrimSpace(q.Get("region")))
	if region != "" {
		if _, ok := dataapi.StateName(region); !ok {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "State not found"})
			return
		}
	}
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid limit"})
			return
		}
		limit = n
	}

	items, err := h.deps.Samples.Samples(r.Context(), ds.ID, region, limit)
	if err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Str("dataset", string(ds.ID)).Msg("Samples failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "Data API unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, samplesResponse{Dataset: string(ds.ID), Region: region, Items: items})
}

func (h handlers) healthz(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	resp, err := h.deps.Health.Check(r.Context(), &healthpb.HealthCheckRequest{})
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}
	body, err := protojson.Marshal(resp)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "health encoding failed"})
		return
	}
	status := http.StatusOK
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (h handlers) metrics(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	h.deps.Metrics.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("failed to write JSON response")
	}
}
