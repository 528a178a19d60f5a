// Package scoring implements the deterministic ESG scoring and loan pricing
// engine. Every function here is pure: identical input always yields
// identical output.
package scoring

import (
	"math"

	"github.com/greencred/lending-service/internal/apperrors"
	"github.com/greencred/lending-service/internal/models"
)

// ratingBand maps a minimum overall score to rating, discount and badge color.
// Evaluated top-down, first match wins.
type ratingBand struct {
	minScore float64
	rating   string
	discount float64
	color    string
}

var ratingBands = []ratingBand{
	{90, "A+", 3.0, "#059669"},
	{80, "A", 2.5, "#16a34a"},
	{70, "B+", 2.0, "#65a30d"},
	{60, "B", 1.5, "#ca8a04"},
	{50, "C", 1.0, "#ea580c"},
	{40, "D", 0.5, "#dc2626"},
}

// categoryOrder fixes the order in which categories are validated and in
// which recommendations and insights are emitted.
var categoryOrder = []string{"environmental", "social", "governance", "risk"}

func categoryValue(in models.ESGInput, category string) float64 {
	switch category {
	case "environmental":
		return in.Environmental
	case "social":
		return in.Social
	case "governance":
		return in.Governance
	default:
		return in.Risk
	}
}

// validateInput rejects the first non-finite or out-of-range category score.
// Out-of-range values are rejected rather than clamped so that stored scores
// stay auditable.
func validateInput(in models.ESGInput) error {
	for _, cat := range categoryOrder {
		v := categoryValue(in, cat)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return apperrors.NewValidationError(cat, "score must be a number")
		}
		if v < 0 || v > 100 {
			return apperrors.NewValidationError(cat, "score must be between 0 and 100")
		}
	}
	return nil
}

// ComputeScore maps the four category inputs to an aggregate ESG score.
//
// The overall score is the unweighted arithmetic mean of the four categories,
// rounded to one decimal place with math.Round (half away from zero). The
// rating, discount and color come from a fixed threshold table on the
// rounded overall score.
func ComputeScore(in models.ESGInput) (models.ESGScore, error) {
	if err := validateInput(in); err != nil {
		return models.ESGScore{}, err
	}

	overall := (in.Environmental + in.Social + in.Governance + in.Risk) / 4
	overall = math.Round(overall*10) / 10

	score := models.ESGScore{
		OverallScore: overall,
		Rating:       "D",
		Discount:     0,
		Color:        "#dc2626",
		Breakdown:    in,
	}
	for _, band := range ratingBands {
		if overall >= band.minScore {
			score.Rating = band.rating
			score.Discount = band.discount
			score.Color = band.color
			break
		}
	}
	return score, nil
}
