package problem

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ecolink-tn/ecolink-api/internal/auth"
	"github.com/ecolink-tn/ecolink-api/internal/pagination"
	"github.com/gorilla/mux"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Problem *Problem `json:"problem,omitempty"`
}

type ListResponse struct {
	Success bool `json:"success"`
	*ListResult
}

type MarkersResponse struct {
	Success bool     `json:"success"`
	Markers []Marker `json:"markers"`
	Total   int      `json:"total"`
}

type RefreshResponse struct {
	Success bool `json:"success"`
	Total   int  `json:"total"`
}

// ReportProblem handles POST /problems. Requires an authenticated reporter;
// the check happens before anything touches the store.
func (h *Handler) ReportProblem(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req CreateProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	p, err := h.service.ReportProblem(r.Context(), req, principal.UserID)
	if err != nil {
		if isValidationError(err) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "creation_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Message: "Problem reported successfully",
		Problem: p,
	})
}

// ListProblems handles GET /problems with filter, sort and pagination
// query parameters.
func (h *Handler) ListProblems(w http.ResponseWriter, r *http.Request) {
	f := filtersFromQuery(r)
	key := ParseSortKey(r.URL.Query().Get("sort"))
	params := pagination.ParseParams(r)

	result, err := h.service.ListProblems(r.Context(), f, key, params)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListResponse{
		Success:    true,
		ListResult: result,
	})
}

// ListMarkers handles GET /problems/markers, the data feed for the map.
func (h *Handler) ListMarkers(w http.ResponseWriter, r *http.Request) {
	f := filtersFromQuery(r)

	markers, err := h.service.ListMarkers(r.Context(), f)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MarkersResponse{
		Success: true,
		Markers: markers,
		Total:   len(markers),
	})
}

// GetProblem handles GET /problems/{id}.
func (h *Handler) GetProblem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Problem ID is required")
		return
	}

	p, err := h.service.GetProblem(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Problem not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Message: "Problem retrieved successfully",
		Problem: p,
	})
}

// Refresh handles POST /problems/refresh, forcing a reload of the cached
// collection for read-after-write consumers.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	problems := h.service.Refetch(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RefreshResponse{
		Success: true,
		Total:   len(problems),
	})
}

func filtersFromQuery(r *http.Request) FilterState {
	q := r.URL.Query()
	return FilterState{
		Search:      q.Get("search"),
		Status:      q.Get("status"),
		DangerLevel: q.Get("danger_level"),
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrMissingTitle) ||
		errors.Is(err, ErrMissingDescription) ||
		errors.Is(err, ErrMissingLocation) ||
		errors.Is(err, ErrInvalidDangerLevel)
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errorType,
		Message: message,
	})
}
