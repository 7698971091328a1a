package organization

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	Organization *Organization `json:"organization,omitempty"`
}

type ServiceResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Service *OrganizationService `json:"service,omitempty"`
}

type ServicesListResponse struct {
	Success  bool                  `json:"success"`
	Services []OrganizationService `json:"services"`
	Total    int                   `json:"total"`
}

type DirectoryResponse struct {
	Success bool `json:"success"`
	*DirectoryResult
}

type RefreshResponse struct {
	Success bool `json:"success"`
	Total   int  `json:"total"`
}

// RegisterOrganization handles POST /organizations. The caller becomes the
// owner; the entry starts unverified.
func (h *Handler) RegisterOrganization(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	org, err := h.service.RegisterOrganization(r.Context(), req, principal.UserID)
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
		Success:      true,
		Message:      "Organization registered successfully, pending verification",
		Organization: org,
	})
}

// Directory handles GET /organizations with filter, sort and pagination
// query parameters. Public; verified entries only.
func (h *Handler) Directory(w http.ResponseWriter, r *http.Request) {
	f := filtersFromQuery(r)
	key := ParseSortKey(r.URL.Query().Get("sort"))
	params := pagination.ParseParams(r)

	result, err := h.service.Directory(r.Context(), f, key, params)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DirectoryResponse{
		Success:         true,
		DirectoryResult: result,
	})
}

// GetOrganization handles GET /organizations/{id}.
func (h *Handler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Organization ID is required")
		return
	}

	org, err := h.service.GetOrganization(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Organization not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{
		Success:      true,
		Message:      "Organization retrieved successfully",
		Organization: org,
	})
}

// AddService handles POST /organizations/{id}/services. Owner only.
func (h *Handler) AddService(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	vars := mux.Vars(r)
	orgID := vars["id"]

	var req CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	svc, err := h.service.AddService(r.Context(), orgID, req, principal.UserID)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingServiceName):
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		case errors.Is(err, ErrNotFound):
			respondError(w, http.StatusNotFound, "not_found", "Organization not found")
		case errors.Is(err, ErrForbidden):
			respondError(w, http.StatusForbidden, "forbidden", "Only the organization owner can add services")
		default:
			respondError(w, http.StatusInternalServerError, "creation_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ServiceResponse{
		Success: true,
		Message: "Service added successfully",
		Service: svc,
	})
}

// ListServices handles GET /organizations/{id}/services.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orgID := vars["id"]

	services, err := h.service.ListServices(r.Context(), orgID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ServicesListResponse{
		Success:  true,
		Services: services,
		Total:    len(services),
	})
}

// Refresh handles POST /organizations/refresh, forcing a reload of the
// cached directory for read-after-write consumers.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	orgs := h.service.Refetch(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RefreshResponse{
		Success: true,
		Total:   len(orgs),
	})
}

func filtersFromQuery(r *http.Request) FilterState {
	q := r.URL.Query()

	rating := 0.0
	if v := q.Get("rating"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			rating = parsed
		}
	}

	rseScore := 0
	if v := q.Get("rse_score"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			rseScore = parsed
		}
	}

	return FilterState{
		Search:        q.Get("search"),
		Type:          q.Get("type"),
		Category:      q.Get("category"),
		Location:      q.Get("location"),
		Rating:        rating,
		Availability:  q.Get("availability"),
		Certification: q.Get("certified") == "true",
		RSEScore:      rseScore,
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrMissingName) ||
		errors.Is(err, ErrMissingCity) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidEmail)
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errorType,
		Message: message,
	})
}
