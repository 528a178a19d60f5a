package models

// LoanTerms describes the financial terms derived from an ESG score and a
// requested principal. Monetary fields are rounded to 2 decimal places.
type LoanTerms struct {
	LoanAmount     float64 `json:"loan_amount"`
	BaseRate       float64 `json:"base_rate"`
	DiscountedRate float64 `json:"discounted_rate"`
	MonthlyPayment float64 `json:"monthly_payment"`
	MonthlySavings float64 `json:"monthly_savings"`
	TotalSavings   float64 `json:"total_savings"`
	TermYears      int     `json:"term_years"`
}
