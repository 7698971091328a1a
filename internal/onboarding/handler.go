package onboarding

import (
	"encoding/json"
	"net/http"

	"github.com/ecolink-tn/ecolink-api/internal/auth"
)

type Handler struct {
	store     *SessionStore
	completer Completer
}

func NewHandler(store *SessionStore, completer Completer) *Handler {
	return &Handler{
		store:     store,
		completer: completer,
	}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// StateResponse is the wizard state plus whatever reference data the
// current step needs.
type StateResponse struct {
	Success     bool       `json:"success"`
	Wizard      Wizard     `json:"wizard"`
	Interests   []Interest `json:"interest_catalog,omitempty"`
	Recommended []Activity `json:"recommended_activities,omitempty"`
	Other       []Activity `json:"other_activities,omitempty"`
}

// AdvanceRequest carries the selections for the step being left.
type AdvanceRequest struct {
	Interests  []string `json:"interests,omitempty"`
	Activities []string `json:"activities,omitempty"`
}

// GetState handles GET /onboarding.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	wizard := h.store.Get(principal.UserID)
	respondState(w, wizard)
}

// Advance handles POST /onboarding/advance. The request body sets the
// selections for the current step, then the wizard moves forward. Leaving
// the interests step with nothing selected is rejected and the state stays
// where it is.
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req AdvanceRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
			return
		}
	}

	wizard := h.store.Get(principal.UserID)
	switch wizard.Step {
	case StepInterests:
		if req.Interests != nil {
			wizard = wizard.WithInterests(req.Interests)
		}
	case StepActivities:
		if req.Activities != nil {
			wizard = wizard.WithActivities(req.Activities)
		}
	}

	advanced := wizard.Next()
	if advanced.Step == wizard.Step && wizard.Step == StepInterests {
		// Guard refused the transition; persist the (possibly updated)
		// selections but report the validation failure.
		h.store.Put(principal.UserID, wizard)
		respondError(w, http.StatusBadRequest, "validation_error", "Select at least one interest to continue")
		return
	}

	h.store.Put(principal.UserID, advanced)
	respondState(w, advanced)
}

// Back handles POST /onboarding/back. Selections survive backward
// navigation.
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	wizard := h.store.Get(principal.UserID).Back()
	h.store.Put(principal.UserID, wizard)
	respondState(w, wizard)
}

// Finish handles POST /onboarding/finish: the terminal action invoking the
// completion hook with the accumulated selections, then dropping the
// session.
func (h *Handler) Finish(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	wizard := h.store.Get(principal.UserID)
	if !wizard.Done() {
		respondError(w, http.StatusConflict, "not_complete", "Onboarding is not at the final step")
		return
	}

	if err := h.completer.Complete(r.Context(), principal.UserID, wizard.Selections()); err != nil {
		respondError(w, http.StatusInternalServerError, "completion_failed", err.Error())
		return
	}

	h.store.Delete(principal.UserID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Bienvenue dans EcoLink ! Votre profil a été configuré avec succès.",
	})
}

func respondState(w http.ResponseWriter, wizard Wizard) {
	resp := StateResponse{
		Success: true,
		Wizard:  wizard,
	}
	switch wizard.Step {
	case StepInterests:
		resp.Interests = Interests
	case StepActivities:
		resp.Recommended, resp.Other = PartitionActivities(Activities, wizard.Interests)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errorType,
		Message: message,
	})
}
