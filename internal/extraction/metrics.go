package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/greencred/lending-service/internal/models"
)

// Per-category keyword patterns, tried in order; the first numeric match
// wins. Detected values outside [0,100] are clamped into range.
var (
	environmentalPatterns = compileAll(
		`carbon.*emissions?.*?(\d+)`,
		`renewable.*energy.*?(\d+)`,
		`waste.*reduction.*?(\d+)`,
		`environmental.*score.*?(\d+)`,
		`sustainability.*rating.*?(\d+)`,
	)
	socialPatterns = compileAll(
		`employee.*satisfaction.*?(\d+)`,
		`diversity.*index.*?(\d+)`,
		`community.*engagement.*?(\d+)`,
		`social.*impact.*?(\d+)`,
		`workplace.*safety.*?(\d+)`,
	)
	governancePatterns = compileAll(
		`board.*independence.*?(\d+)`,
		`transparency.*score.*?(\d+)`,
		`compliance.*rating.*?(\d+)`,
		`governance.*index.*?(\d+)`,
		`ethics.*score.*?(\d+)`,
	)
	riskPatterns = compileAll(
		`risk.*management.*?(\d+)`,
		`cybersecurity.*score.*?(\d+)`,
		`operational.*risk.*?(\d+)`,
		`compliance.*risk.*?(\d+)`,
		`business.*continuity.*?(\d+)`,
	)
)

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(p)
	}
	return res
}

func firstMatch(text string, patterns []*regexp.Regexp) *float64 {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		return &v
	}
	return nil
}

// ExtractMetrics scans extracted document text for ESG category scores.
func ExtractMetrics(text string) models.ExtractedMetrics {
	lower := strings.ToLower(text)
	return models.ExtractedMetrics{
		Environmental: firstMatch(lower, environmentalPatterns),
		Social:        firstMatch(lower, socialPatterns),
		Governance:    firstMatch(lower, governancePatterns),
		Risk:          firstMatch(lower, riskPatterns),
	}
}
