package scoring

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/greencred/lending-service/internal/apperrors"
	"github.com/greencred/lending-service/internal/models"
)

// minRate is the floor for the discounted rate; it keeps a large discount
// from driving the rate to zero or below.
const minRate = 0.5

// Defaults used when the caller does not override pricing parameters.
const (
	DefaultBaseRate  = 7.5
	DefaultTermYears = 5
)

// monthlyPayment computes the standard annuity payment for a principal at an
// annual rate (percent) over n months. A zero monthly rate degenerates to an
// even principal split, since the closed-form formula divides by zero there.
func monthlyPayment(principal, annualRate float64, months int) float64 {
	r := annualRate / 100 / 12
	n := float64(months)
	if r == 0 {
		return principal / n
	}
	factor := math.Pow(1+r, n)
	return principal * r * factor / (factor - 1)
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// ComputeLoanTerms converts a requested principal and an ESG score into loan
// terms: the discounted rate, the monthly annuity payment, and the savings
// against the undiscounted base rate.
//
// Monetary outputs are rounded to 2 decimal places only at the end, so
// rounding error does not compound through the savings calculation.
func ComputeLoanTerms(principal float64, score models.ESGScore, baseRate float64, termYears int) (models.LoanTerms, error) {
	if math.IsNaN(principal) || math.IsInf(principal, 0) || principal <= 0 {
		return models.LoanTerms{}, apperrors.NewValidationError("loanAmount", "must be a positive number")
	}
	if termYears <= 0 {
		return models.LoanTerms{}, apperrors.NewValidationError("termYears", "must be a positive number of years")
	}
	if math.IsNaN(baseRate) || math.IsInf(baseRate, 0) || baseRate < 0 {
		return models.LoanTerms{}, apperrors.NewValidationError("baseRate", "must be a non-negative number")
	}

	discountedRate := math.Max(minRate, baseRate-score.Discount)
	months := termYears * 12

	payment := monthlyPayment(principal, discountedRate, months)
	basePayment := monthlyPayment(principal, baseRate, months)
	monthlySavings := basePayment - payment
	totalSavings := monthlySavings * float64(months)

	return models.LoanTerms{
		LoanAmount:     principal,
		BaseRate:       baseRate,
		DiscountedRate: round2(discountedRate),
		MonthlyPayment: round2(payment),
		MonthlySavings: round2(monthlySavings),
		TotalSavings:   round2(totalSavings),
		TermYears:      termYears,
	}, nil
}
