package handler

import (
	"net/http"

	"github.com/greencred/lending-service/internal/apperrors"
	"github.com/greencred/lending-service/internal/models"
)

type scoreRequest struct {
	CompanyName string           `json:"company_name"`
	LoanAmount  float64          `json:"loan_amount"`
	ESGData     *models.ESGInput `json:"esg_data"`
}

// Score computes the ESG score, loan terms, insights and recommendations for
// the submitted category scores.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.ESGData == nil {
		h.writeError(w, apperrors.NewValidationError("esg_data", "esg_data is required"))
		return
	}
	if req.LoanAmount <= 0 {
		h.writeError(w, apperrors.NewValidationError("loan_amount", "loan_amount must be positive"))
		return
	}

	result, err := h.svc.Score(*req.ESGData, req.LoanAmount, req.CompanyName)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
