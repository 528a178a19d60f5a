package models

// ESGInput holds the four category scores, each expected in [0,100].
type ESGInput struct {
	Environmental float64 `json:"environmental"`
	Social        float64 `json:"social"`
	Governance    float64 `json:"governance"`
	Risk          float64 `json:"risk"`
}

// ESGScore is the result of scoring an ESGInput. Immutable once computed.
type ESGScore struct {
	OverallScore float64  `json:"overall_score"`
	Rating       string   `json:"rating"`
	Discount     float64  `json:"discount"` // percentage points off the base rate
	Color        string   `json:"color"`    // display hint for the rating badge
	Breakdown    ESGInput `json:"breakdown"`
}

// Recommendation is an improvement suggestion for one weak category.
type Recommendation struct {
	Category   string `json:"category"`
	Priority   string `json:"priority"` // High or Medium
	Suggestion string `json:"suggestion"`
	Impact     string `json:"impact"`
	Icon       string `json:"icon"`
}

// Insight qualifies one category as a strength or a warning.
type Insight struct {
	Category string `json:"category"`
	Type     string `json:"type"` // positive or warning
	Message  string `json:"message"`
}

const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"

	InsightPositive = "positive"
	InsightWarning  = "warning"
)

// CompanyESG is a best-effort public-data estimate for a company.
type CompanyESG struct {
	Scores    ESGInput `json:"scores"`
	Source    string   `json:"source"`
	Estimated bool     `json:"estimated"` // true when the data is a generated placeholder
}

// ReportRef points at a published ESG report for a company.
type ReportRef struct {
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	Type      string  `json:"type"`
	Year      int     `json:"year"`
	Relevance float64 `json:"relevance"`
}
