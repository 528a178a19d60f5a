package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greencred/lending-service/internal/models"
)

func TestRecommendations_WeakEnvironmentalOnly(t *testing.T) {
	score := models.ESGScore{
		Breakdown: models.ESGInput{Environmental: 45, Social: 75, Governance: 80, Risk: 70},
	}

	recs := Recommendations(score)

	require.Len(t, recs, 1)
	assert.Equal(t, "Environmental", recs[0].Category)
	assert.Equal(t, models.PriorityHigh, recs[0].Priority)
	assert.Equal(t, "Implement renewable energy sources and reduce carbon footprint", recs[0].Suggestion)
	assert.Equal(t, "Could improve score by 15-20 points", recs[0].Impact)
}

func TestRecommendations_PriorityThreshold(t *testing.T) {
	tests := []struct {
		name         string
		social       float64
		wantPriority string
	}{
		{name: "below 50 is High", social: 49.9, wantPriority: models.PriorityHigh},
		{name: "50 is Medium", social: 50, wantPriority: models.PriorityMedium},
		{name: "just below 70 is Medium", social: 69.9, wantPriority: models.PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := models.ESGScore{
				Breakdown: models.ESGInput{Environmental: 90, Social: tt.social, Governance: 90, Risk: 90},
			}
			recs := Recommendations(score)
			require.Len(t, recs, 1)
			assert.Equal(t, "Social", recs[0].Category)
			assert.Equal(t, tt.wantPriority, recs[0].Priority)
		})
	}
}

func TestRecommendations_FixedCategoryOrder(t *testing.T) {
	score := models.ESGScore{
		Breakdown: models.ESGInput{Environmental: 10, Social: 20, Governance: 30, Risk: 40},
	}

	recs := Recommendations(score)

	require.Len(t, recs, 4)
	assert.Equal(t, "Environmental", recs[0].Category)
	assert.Equal(t, "Social", recs[1].Category)
	assert.Equal(t, "Governance", recs[2].Category)
	assert.Equal(t, "Risk Management", recs[3].Category)
	for _, r := range recs {
		assert.Equal(t, models.PriorityHigh, r.Priority)
		assert.NotEmpty(t, r.Icon)
	}
}

func TestRecommendations_NoneWhenAllStrong(t *testing.T) {
	score := models.ESGScore{
		Breakdown: models.ESGInput{Environmental: 70, Social: 85, Governance: 92, Risk: 71},
	}
	assert.Empty(t, Recommendations(score))
}

func TestInsights_Bands(t *testing.T) {
	tests := []struct {
		name     string
		input    models.ESGInput
		wantLen  int
		wantType map[string]string // category -> insight type
	}{
		{
			name:    "all strong",
			input:   models.ESGInput{Environmental: 80, Social: 85, Governance: 95, Risk: 88},
			wantLen: 4,
			wantType: map[string]string{
				"Environmental": models.InsightPositive,
				"Social":        models.InsightPositive,
				"Governance":    models.InsightPositive,
				"Risk":          models.InsightPositive,
			},
		},
		{
			name:    "all weak",
			input:   models.ESGInput{Environmental: 10, Social: 59.9, Governance: 30, Risk: 0},
			wantLen: 4,
			wantType: map[string]string{
				"Environmental": models.InsightWarning,
				"Social":        models.InsightWarning,
				"Governance":    models.InsightWarning,
				"Risk":          models.InsightWarning,
			},
		},
		{
			name:     "mid band 60-79 is silent",
			input:    models.ESGInput{Environmental: 60, Social: 70, Governance: 75, Risk: 79.9},
			wantLen:  0,
			wantType: map[string]string{},
		},
		{
			name:    "mixed",
			input:   models.ESGInput{Environmental: 45, Social: 75, Governance: 80, Risk: 70},
			wantLen: 2,
			wantType: map[string]string{
				"Environmental": models.InsightWarning,
				"Governance":    models.InsightPositive,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insights := Insights(tt.input)
			require.Len(t, insights, tt.wantLen)
			for _, in := range insights {
				assert.Equal(t, tt.wantType[in.Category], in.Type, "category %s", in.Category)
				assert.NotEmpty(t, in.Message)
			}
		})
	}
}

func TestInsights_FixedCategoryOrder(t *testing.T) {
	insights := Insights(models.ESGInput{Environmental: 90, Social: 10, Governance: 85, Risk: 20})
	require.Len(t, insights, 4)
	assert.Equal(t, "Environmental", insights[0].Category)
	assert.Equal(t, "Social", insights[1].Category)
	assert.Equal(t, "Governance", insights[2].Category)
	assert.Equal(t, "Risk", insights[3].Category)
}
