package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/greencred/lending-service/internal/apperrors"
)

type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps the error taxonomy to HTTP status codes. Anything outside
// the taxonomy is a 500 with a generic message; the concrete error stays in
// the logs only.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		ve *apperrors.ValidationError
		nf *apperrors.NotFoundError
		it *apperrors.InvalidTransitionError
		up *apperrors.UpstreamError
	)
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Error(), Fields: ve.Fields})
	case errors.As(err, &nf):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: nf.Error()})
	case errors.As(err, &it):
		writeJSON(w, http.StatusConflict, errorResponse{Error: it.Error()})
	case errors.Is(err, apperrors.ErrVersionConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.As(err, &up):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: up.Error()})
	default:
		h.log.Errorf("Unhandled error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.NewValidationError("body", "invalid JSON request body")
	}
	return nil
}
