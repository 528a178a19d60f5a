package handler

import (
	"encoding/base64"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/greencred/lending-service/internal/apperrors"
)

type uploadRequest struct {
	CompanyName  string `json:"company_name"`
	FileName     string `json:"file_name"`
	DocumentType string `json:"document_type,omitempty"`
	Content      string `json:"content"` // base64-encoded document bytes
}

// UploadDocument accepts a base64-encoded document, extracts ESG metrics
// from it and stores it.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.FileName == "" {
		h.writeError(w, apperrors.NewValidationError("file_name", "file_name is required"))
		return
	}
	data, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		h.writeError(w, apperrors.NewValidationError("content", "content must be base64-encoded"))
		return
	}

	result, err := h.svc.UploadDocument(r.Context(), req.CompanyName, req.FileName, req.DocumentType, data)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// DownloadDocument streams a stored document after verifying the signed
// download token.
func (h *Handler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	data, err := h.svc.GetDocument(r.Context(), key, r.URL.Query().Get("token"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
