package handler

import (
	"net/http"

	"github.com/greencred/lending-service/internal/integrations/assistant"
	"github.com/greencred/lending-service/internal/models"
)

type chatRequest struct {
	Message   string              `json:"message"`
	History   []assistant.Message `json:"history,omitempty"`
	ESGScores *models.ESGInput    `json:"esg_scores,omitempty"`
}

// Chat forwards a conversation turn to the ESG assistant.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	reply, err := h.svc.Chat(r.Context(), req.Message, req.History, req.ESGScores)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}
