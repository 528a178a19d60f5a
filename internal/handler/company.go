package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/greencred/lending-service/internal/models"
)

type companyESGResponse struct {
	CompanyName string             `json:"company_name"`
	Data        models.CompanyESG  `json:"esg_data"`
	Reports     []models.ReportRef `json:"reports"`
}

// CompanyESG returns a best-effort public ESG estimate and published report
// references for a company.
func (h *Handler) CompanyESG(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	data, reports, err := h.svc.LookupCompany(r.Context(), name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, companyESGResponse{
		CompanyName: name,
		Data:        data,
		Reports:     reports,
	})
}
