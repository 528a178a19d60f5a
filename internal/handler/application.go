package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/greencred/lending-service/internal/models"
	"github.com/greencred/lending-service/internal/service"
)

// CreateApplication submits a new loan application.
func (h *Handler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	var req service.ApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	app, err := h.svc.CreateApplication(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

// GetApplication returns the full workflow state of an application,
// addressed by UUID or reference number.
func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	app, err := h.svc.GetApplication(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

type statusUpdateRequest struct {
	Status models.Status `json:"status"`
	Agent  string        `json:"agent,omitempty"`
	Note   string        `json:"note,omitempty"`
}

// UpdateStatus applies a reviewer-driven status transition.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	app, err := h.svc.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status, req.Agent, req.Note)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// Review runs one automated review step on the application.
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.svc.AdvanceReview(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}
