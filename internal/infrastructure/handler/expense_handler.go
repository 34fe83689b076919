package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gfranzini/expense-rate-service/internal/application/service"
	"github.com/gfranzini/expense-rate-service/internal/domain/entity"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/logger"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// ExpenseHandler handles HTTP requests for expenses
type ExpenseHandler struct {
	service *service.ExpenseService
	logger  logger.Logger
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(svc *service.ExpenseService, log logger.Logger) *ExpenseHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ExpenseHandler{
		service: svc,
		logger:  log,
	}
}

// parseExpenseDate accepts a bare calendar date or a full timestamp.
func parseExpenseDate(s string) (time.Time, error) {
	if t, err := time.Parse(entity.DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func expenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date.Format(entity.DateLayout),
		Amount:      e.Amount,
		Currency:    e.Currency,
	}
}

func convertedExpenseResponse(ce *service.ConvertedExpense) ConvertedExpenseResponse {
	return ConvertedExpenseResponse{
		ExpenseResponse: expenseResponse(ce.Expense),
		Converted: &ConvertedAmount{
			Amount:      ce.Converted.Amount,
			Currency:    ce.Converted.Currency,
			IsEstimated: ce.Converted.IsEstimated,
		},
	}
}

// CreateExpense handles the creation of a new expense
func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendBadRequest(w, h.logger, "The request body could not be parsed as valid JSON", requestID)
		return
	}

	date, err := parseExpenseDate(req.Date)
	if err != nil {
		sendBadRequest(w, h.logger, "expense_date must be YYYY-MM-DD or RFC 3339", requestID)
		return
	}

	id, err := h.service.CreateExpense(r.Context(), req.Title, req.Description, date, req.Amount, req.Currency)
	if err != nil {
		sendError(w, h.logger, err, requestID)
		return
	}

	h.logger.Info("Expense created", map[string]interface{}{
		"request_id": requestID,
		"id":         id,
	})

	sendJSON(w, http.StatusCreated, CreateExpenseResponse{ID: id})
}

// ListExpenses handles listing every expense, optionally converted to a
// target currency via the convert_to query parameter.
func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	convertTo := r.URL.Query().Get("convert_to")

	if convertTo == "" {
		expenses, err := h.service.ListExpenses(r.Context())
		if err != nil {
			sendError(w, h.logger, err, requestID)
			return
		}

		resp := make([]ExpenseResponse, 0, len(expenses))
		for _, e := range expenses {
			resp = append(resp, expenseResponse(e))
		}
		sendJSON(w, http.StatusOK, resp)
		return
	}

	if len(convertTo) != 3 {
		sendBadRequest(w, h.logger, "convert_to must be a 3-letter currency code", requestID)
		return
	}

	converted, err := h.service.ListExpensesConverted(r.Context(), convertTo)
	if err != nil {
		sendError(w, h.logger, err, requestID)
		return
	}

	resp := make([]ConvertedExpenseResponse, 0, len(converted))
	for _, ce := range converted {
		resp = append(resp, convertedExpenseResponse(ce))
	}
	sendJSON(w, http.StatusOK, resp)
}

// GetExpense handles retrieving one expense, optionally converted
func (h *ExpenseHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]
	convertTo := r.URL.Query().Get("convert_to")

	if convertTo == "" {
		expense, err := h.service.GetExpense(r.Context(), id)
		if err != nil {
			sendError(w, h.logger, err, requestID)
			return
		}
		sendJSON(w, http.StatusOK, expenseResponse(expense))
		return
	}

	if len(convertTo) != 3 {
		sendBadRequest(w, h.logger, "convert_to must be a 3-letter currency code", requestID)
		return
	}

	converted, err := h.service.GetExpenseConverted(r.Context(), id, convertTo)
	if err != nil {
		sendError(w, h.logger, err, requestID)
		return
	}
	sendJSON(w, http.StatusOK, convertedExpenseResponse(converted))
}

// UpdateExpense handles a partial update of an expense
func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	var req UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendBadRequest(w, h.logger, "The request body could not be parsed as valid JSON", requestID)
		return
	}

	update := service.ExpenseUpdate{
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
	}
	if req.Date != nil {
		date, err := parseExpenseDate(*req.Date)
		if err != nil {
			sendBadRequest(w, h.logger, "expense_date must be YYYY-MM-DD or RFC 3339", requestID)
			return
		}
		update.Date = &date
	}

	expense, err := h.service.UpdateExpense(r.Context(), id, update)
	if err != nil {
		sendError(w, h.logger, err, requestID)
		return
	}

	sendJSON(w, http.StatusOK, expenseResponse(expense))
}

// DeleteExpense handles removing an expense
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	if err := h.service.DeleteExpense(r.Context(), id); err != nil {
		sendError(w, h.logger, err, requestID)
		return
	}

	h.logger.Info("Expense deleted", map[string]interface{}{
		"request_id": requestID,
		"id":         id,
	})

	w.WriteHeader(http.StatusNoContent)
}

// RegisterRoutes registers the expense handler routes
func (h *ExpenseHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/expenses", h.CreateExpense).Methods("POST")
	router.HandleFunc("/expenses", h.ListExpenses).Methods("GET")
	router.HandleFunc("/expenses/{id}", h.GetExpense).Methods("GET")
	router.HandleFunc("/expenses/{id}", h.UpdateExpense).Methods("PATCH")
	router.HandleFunc("/expenses/{id}", h.DeleteExpense).Methods("DELETE")
}
