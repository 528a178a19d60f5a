// Package handler exposes the HTTP API: scoring, the application workflow,
// document intake, chat and company lookup. Handlers decode and validate the
// wire format, delegate to the service layer and translate its errors to
// status codes.
package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/greencred/lending-service/internal/service"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes attaches all API routes to the router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/score", h.Score).Methods(http.MethodPost)

	r.HandleFunc("/applications", h.CreateApplication).Methods(http.MethodPost)
	r.HandleFunc("/applications/{id}", h.GetApplication).Methods(http.MethodGet)
	r.HandleFunc("/applications/{id}/status", h.UpdateStatus).Methods(http.MethodPatch)
	r.HandleFunc("/applications/{id}/review", h.Review).Methods(http.MethodPost)

	r.HandleFunc("/documents", h.UploadDocument).Methods(http.MethodPost)
	r.HandleFunc("/documents/{key:.+}", h.DownloadDocument).Methods(http.MethodGet)

	r.HandleFunc("/chat", h.Chat).Methods(http.MethodPost)
	r.HandleFunc("/companies/{name}/esg", h.CompanyESG).Methods(http.MethodGet)

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
