package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gfranzini/expense-rate-service/internal/apperrors"
	"github.com/gfranzini/expense-rate-service/internal/domain/entity"
	domainsvc "github.com/gfranzini/expense-rate-service/internal/domain/service"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/logger"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// RateHandler exposes rate table resolution over HTTP
type RateHandler struct {
	resolver domainsvc.RateResolver
	logger   logger.Logger
}

// NewRateHandler creates a new rate handler
func NewRateHandler(resolver domainsvc.RateResolver, log logger.Logger) *RateHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &RateHandler{
		resolver: resolver,
		logger:   log,
	}
}

func rateTableResponse(res *entity.RateResolution) RateTableResponse {
	return RateTableResponse{
		Date:        res.Table.DateKey(),
		RetrievedAt: res.Table.RetrievedAt.Format(time.RFC3339),
		Rates:       res.Table.Rates,
		CacheHit:    res.CacheHit,
	}
}

// GetLatest resolves yesterday's rate table
func (h *RateHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	res, err := h.resolver.ResolveLatest(r.Context())
	if err != nil {
		sendError(w, h.logger, err, requestID)
		return
	}

	sendJSON(w, http.StatusOK, rateTableResponse(res))
}

// GetByDate resolves the rate table for one historical date
func (h *RateHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	raw := mux.Vars(r)["date"]

	date, err := time.Parse(entity.DateLayout, raw)
	if err != nil {
		sendError(w, h.logger, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", apperrors.ErrInvalidDate, raw), requestID)
		return
	}

	res, err := h.resolver.ResolveHistorical(r.Context(), date)
	if err != nil {
		sendError(w, h.logger, err, requestID)
		return
	}

	sendJSON(w, http.StatusOK, rateTableResponse(res))
}

// RegisterRoutes registers the rate handler routes
func (h *RateHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/rates/latest", h.GetLatest).Methods("GET")
	router.HandleFunc("/rates/{date}", h.GetByDate).Methods("GET")
}
