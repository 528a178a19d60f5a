package scoring

import "github.com/greencred/lending-service/internal/models"

// adviceEntry holds the static per-category recommendation catalog.
type adviceEntry struct {
	displayName string
	suggestion  string
	impact      string
	icon        string
}

var adviceCatalog = map[string]adviceEntry{
	"environmental": {
		displayName: "Environmental",
		suggestion:  "Implement renewable energy sources and reduce carbon footprint",
		impact:      "Could improve score by 15-20 points",
		icon:        "🌱",
	},
	"social": {
		displayName: "Social",
		suggestion:  "Enhance employee welfare and community engagement programs",
		impact:      "Could improve score by 10-15 points",
		icon:        "👥",
	},
	"governance": {
		displayName: "Governance",
		suggestion:  "Strengthen board independence and transparency practices",
		impact:      "Could improve score by 12-18 points",
		icon:        "🏛️",
	},
	"risk": {
		displayName: "Risk Management",
		suggestion:  "Develop comprehensive risk assessment and mitigation strategies",
		impact:      "Could improve score by 10-16 points",
		icon:        "🛡️",
	},
}

type insightEntry struct {
	displayName string
	positive    string
	warning     string
}

var insightCatalog = map[string]insightEntry{
	"environmental": {
		displayName: "Environmental",
		positive:    "Strong environmental performance with sustainable practices",
		warning:     "Environmental performance needs improvement",
	},
	"social": {
		displayName: "Social",
		positive:    "Excellent social responsibility and community engagement",
		warning:     "Social impact initiatives could be strengthened",
	},
	"governance": {
		displayName: "Governance",
		positive:    "Strong governance structure and transparency",
		warning:     "Governance practices require enhancement",
	},
	"risk": {
		displayName: "Risk",
		positive:    "Excellent risk management and mitigation strategies",
		warning:     "Risk management capabilities need strengthening",
	},
}

// Recommendations returns one improvement suggestion per category scoring
// below 70, in fixed category order. Priority is High below 50, Medium
// otherwise.
func Recommendations(score models.ESGScore) []models.Recommendation {
	recs := make([]models.Recommendation, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		v := categoryValue(score.Breakdown, cat)
		if v >= 70 {
			continue
		}
		priority := models.PriorityMedium
		if v < 50 {
			priority = models.PriorityHigh
		}
		entry := adviceCatalog[cat]
		recs = append(recs, models.Recommendation{
			Category:   entry.displayName,
			Priority:   priority,
			Suggestion: entry.suggestion,
			Impact:     entry.impact,
			Icon:       entry.icon,
		})
	}
	return recs
}

// Insights returns a positive insight for categories at 80 or above and a
// warning below 60, in fixed category order. The 60-79 band intentionally
// emits nothing.
func Insights(breakdown models.ESGInput) []models.Insight {
	insights := make([]models.Insight, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		v := categoryValue(breakdown, cat)
		entry := insightCatalog[cat]
		switch {
		case v >= 80:
			insights = append(insights, models.Insight{
				Category: entry.displayName,
				Type:     models.InsightPositive,
				Message:  entry.positive,
			})
		case v < 60:
			insights = append(insights, models.Insight{
				Category: entry.displayName,
				Type:     models.InsightWarning,
				Message:  entry.warning,
			})
		}
	}
	return insights
}
