package esgdata

import (
	"fmt"
	"strings"

	"github.com/greencred/lending-service/internal/models"
)

// SearchReports returns deterministic references to published ESG reports
// for a company. A real implementation would query a report index; the
// deterministic list keeps the response shape stable for consumers.
func SearchReports(companyName string) []models.ReportRef {
	slug := strings.ToLower(strings.TrimSpace(companyName))
	return []models.ReportRef{
		{
			Title:     fmt.Sprintf("%s Sustainability Report 2023", companyName),
			URL:       fmt.Sprintf("https://example.com/%s/sustainability-2023.pdf", slug),
			Type:      "Sustainability Report",
			Year:      2023,
			Relevance: 0.95,
		},
		{
			Title:     fmt.Sprintf("%s ESG Performance Data", companyName),
			URL:       fmt.Sprintf("https://example.com/%s/esg-data.json", slug),
			Type:      "ESG Data",
			Year:      2023,
			Relevance: 0.88,
		},
		{
			Title:     fmt.Sprintf("%s Carbon Footprint Analysis", companyName),
			URL:       fmt.Sprintf("https://example.com/%s/carbon-analysis.pdf", slug),
			Type:      "Environmental Report",
			Year:      2023,
			Relevance: 0.82,
		},
	}
}
