package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/bayanlab/bayanlab-commerce/api/logging"
	"github.com/bayanlab/bayanlab-commerce/api/services/catalog"
	"github.com/bayanlab/bayanlab-commerce/api/services/dataapi"
	stripeapp "github.com/bayanlab/bayanlab-commerce/api/services/stripe/app"
)

// Directory serves the public state listing.
type Directory interface {
	Overview(ctx context.Context) dataapi.Overview
	State(ctx context.Context, code string) (dataapi.StateView, error)
}

// SampleSource serves name/city samples from one dataset.
type SampleSource interface {
	Samples(ctx context.Context, dataset catalog.DatasetID, region string, limit int) ([]dataapi.PreviewItem, error)
}

// Deps are the services the router dispatches to. Directory and Samples are
// optional; Health and Metrics fall back to defaults.
type Deps struct {
	Stripe    stripeapp.Service
	Directory Directory
	Samples   SampleSource
	Health    healthpb.HealthServer
	Metrics   http.Handler
}

type route struct {
	method  string
	pattern string
	handler runtime.HandlerFunc
}

// NewRouter returns the central HTTP router for the API using grpc-gateway's mux.
func NewRouter(d Deps) (http.Handler, error) {
	if d.Stripe == nil {
		return nil, errors.New("router: stripe service is required")
	}
	if d.Metrics == nil {
		d.Metrics = promhttp.Handler()
	}
	if d.Health == nil {
		d.Health = health.NewServer()
	}
	h := handlers{deps: d}

	routes := []route{
		{http.MethodPost, "/api/checkout", h.checkout},
		{http.MethodPost, "/api/webhook", h.webhook},
		{http.MethodGet, "/api/catalog", h.catalog},
		{http.MethodGet, "/healthz", h.healthz},
		{http.MethodGet, "/metrics", h.metrics},
	}
	if d.Directory != nil {
		routes = append(routes,
			route{http.MethodGet, "/api/directory", h.directory},
			route{http.MethodGet, "/api/directory/{state}", h.directoryState},
		)
	}
	if d.Samples != nil {
		routes = append(routes, route{http.MethodGet, "/api/samples/{dataset}", h.samples})
	}

	mux := runtime.NewServeMux()
	for _, rt := range routes {
		if err := mux.HandlePath(rt.method, rt.pattern, rt.handler); err != nil {
			return nil, fmt.Errorf("register %s %s: %w", rt.method, rt.pattern, err)
		}
	}
	return logging.Middleware(mux), nil
}
