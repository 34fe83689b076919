package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gfranzini/expense-rate-service/internal/application/service"
	"github.com/gfranzini/expense-rate-service/internal/domain/entity"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/logger"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	service *service.CategoryService
	logger  logger.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(svc *service.CategoryService, log logger.Logger) *CategoryHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &CategoryHandler{
		service: svc,
		logger:  log,
	}
}

func categoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		ParentID: c.ParentID,
	}
}

// CreateCategory handles the creation of a new category
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendBadRequest(w, h.logger, "The request body could not be parsed as valid JSON", requestID)
		return
	}

	name := ""
	if req.Name != nil {
		name = *req.Name
	}
	parentID := ""
	if req.ParentID != nil {
		parentID = *req.ParentID
	}

	id, err := h.service.CreateCategory(r.Context(), name, parentID)
	if err != nil {
		sendError(w, h.logger, err, requestID)
		return
	}

	sendJSON(w, http.StatusCreated, CategoryResponse{ID: id, Name: name, ParentID: parentID})
}

// ListCategories handles listing every category
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		sendError(w, h.logger, err, requestID)
		return
	}

	resp := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, categoryResponse(c))
	}
	sendJSON(w, http.StatusOK, resp)
}

// GetCategory handles retrieving one category
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	category, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		sendError(w, h.logger, err, requestID)
		return
	}
	sendJSON(w, http.StatusOK, categoryResponse(category))
}

// UpdateCategory handles renaming or reparenting a category
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendBadRequest(w, h.logger, "The request body could not be parsed as valid JSON", requestID)
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), id, req.Name, req.ParentID)
	if err != nil {
		sendError(w, h.logger, err, requestID)
		return
	}
	sendJSON(w, http.StatusOK, categoryResponse(category))
}

// DeleteCategory handles removing a category
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		sendError(w, h.logger, err, requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RegisterRoutes registers the category handler routes
func (h *CategoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/categories", h.CreateCategory).Methods("POST")
	router.HandleFunc("/categories", h.ListCategories).Methods("GET")
	router.HandleFunc("/categories/{id}", h.GetCategory).Methods("GET")
	router.HandleFunc("/categories/{id}", h.UpdateCategory).Methods("PATCH")
	router.HandleFunc("/categories/{id}", h.DeleteCategory).Methods("DELETE")
}
