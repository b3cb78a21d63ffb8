package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"creditlines/internal/disclosure"
	"creditlines/internal/disclosure/metrics"
	dErrors "creditlines/pkg/domain-errors"
	"creditlines/pkg/platform/httputil"
)

// Service defines the read-side operations the handler exposes.
type Service interface {
	Get(ctx context.Context, staticID string) (*disclosure.DisclosedCreditLine, error)
	Find(ctx context.Context, filter disclosure.Filter) ([]*disclosure.DisclosedCreditLine, error)
	Summarize(ctx context.Context, pc disclosure.ProductContext) ([]disclosure.Summary, error)
}

// Handler wires disclosure read endpoints to the query service.
type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs a disclosure handler with its dependencies.
func New(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// Register mounts disclosure read endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/disclosed-credit-lines", h.HandleFind)
	r.Get("/disclosed-credit-lines/summary", h.HandleSummary)
	r.Get("/disclosed-credit-lines/{staticID}", h.HandleGet)
}

// HandleGet handles GET /disclosed-credit-lines/{staticID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	staticID := chi.URLParam(r, "staticID")

	line, err := h.service.Get(r.Context(), staticID)
	if err != nil {
		h.observe("get", err, start)
		httputil.WriteError(w, err)
		return
	}
	h.observe("get", nil, start)
	httputil.WriteJSON(w, http.StatusOK, line)
}

// HandleFind handles GET /disclosed-credit-lines with optional filters.
func (h *Handler) HandleFind(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()
	filter := disclosure.Filter{
		OwnerStaticID:        q.Get("ownerStaticId"),
		CounterpartyStaticID: q.Get("counterpartyStaticId"),
		ProductID:            q.Get("productId"),
		SubProductID:         q.Get("subProductId"),
	}

	lines, err := h.service.Find(r.Context(), filter)
	if err != nil {
		h.observe("find", err, start)
		httputil.WriteError(w, err)
		return
	}
	if lines == nil {
		lines = []*disclosure.DisclosedCreditLine{}
	}
	h.observe("find", nil, start)
	httputil.WriteJSON(w, http.StatusOK, lines)
}

// HandleSummary handles GET /disclosed-credit-lines/summary?productId=&subProductId=.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()
	pc := disclosure.ProductContext{
		ProductID:    q.Get("productId"),
		SubProductID: q.Get("subProductId"),
	}

	summaries, err := h.service.Summarize(r.Context(), pc)
	if err != nil {
		h.observe("summary", err, start)
		httputil.WriteError(w, err)
		return
	}
	if summaries == nil {
		summaries = []disclosure.Summary{}
	}
	h.observe("summary", nil, start)
	httputil.WriteJSON(w, http.StatusOK, summaries)
}

func (h *Handler) observe(endpoint string, err error, start time.Time) {
	result := "ok"
	switch {
	case dErrors.HasCode(err, dErrors.CodeNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
		h.logger.Error("disclosure query failed", "endpoint", endpoint, "error", err)
	}
	h.metrics.ObserveQuery(endpoint, result, time.Since(start))
}
