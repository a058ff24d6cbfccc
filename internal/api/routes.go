package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(mux *chi.Mux, h *Handlers) {
	mux.Get("/healthz", h.Health)
	mux.Get("/version", h.Version)
	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/api/ask", h.Ask)

	if h.Admin != nil {
		mux.Get("/admin/settings", h.Admin.Settings)
	}
}
