// Package esgdata resolves best-effort public ESG estimates for companies.
// Sources implement a narrow lookup interface so tests can supply fixtures
// and a real registry can be plugged in without touching callers.
package esgdata

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/greencred/lending-service/internal/models"
)

// DataSource resolves company ESG estimates by name.
type DataSource interface {
	Lookup(ctx context.Context, companyName string) (models.CompanyESG, error)
}

// StaticSource serves fixture data for known companies and delegates unknown
// names to a fallback estimator. It replaces the original's global mock
// table with an injectable source.
type StaticSource struct {
	fixtures map[string]models.CompanyESG
	fallback DataSource
}

// NewStaticSource builds the fixture-backed source with the default dataset.
func NewStaticSource(fallback DataSource) *StaticSource {
	return &StaticSource{
		fixtures: map[string]models.CompanyESG{
			"apple": {
				Scores: models.ESGInput{Environmental: 85, Social: 78, Governance: 92, Risk: 75},
				Source: "Sustainability Report 2023",
			},
			"microsoft": {
				Scores: models.ESGInput{Environmental: 88, Social: 85, Governance: 90, Risk: 80},
				Source: "ESG Fact Sheet 2023",
			},
			"tesla": {
				Scores: models.ESGInput{Environmental: 95, Social: 70, Governance: 65, Risk: 72},
				Source: "Impact Report 2023",
			},
		},
		fallback: fallback,
	}
}

// Lookup returns fixture data when the company is known, otherwise the
// fallback estimate.
func (s *StaticSource) Lookup(ctx context.Context, companyName string) (models.CompanyESG, error) {
	key := strings.ToLower(strings.TrimSpace(companyName))
	if data, ok := s.fixtures[key]; ok {
		return data, nil
	}
	return s.fallback.Lookup(ctx, companyName)
}

// EstimateSource generates a clearly-labeled randomized placeholder for
// companies with no public data. The Estimated flag is always set so callers
// can never mistake the placeholder for real data.
type EstimateSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewEstimateSource seeds the estimator; inject a fixed seed in tests.
func NewEstimateSource(seed int64) *EstimateSource {
	return &EstimateSource{rng: rand.New(rand.NewSource(seed))}
}

func (e *EstimateSource) score() float64 {
	// 60-99, matching the band the original demo generated.
	return float64(e.rng.Intn(40) + 60)
}

// Lookup fabricates an estimate labeled as such.
func (e *EstimateSource) Lookup(_ context.Context, companyName string) (models.CompanyESG, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return models.CompanyESG{
		Scores: models.ESGInput{
			Environmental: e.score(),
			Social:        e.score(),
			Governance:    e.score(),
			Risk:          e.score(),
		},
		Source:    fmt.Sprintf("Estimated ESG Metrics for %s", companyName),
		Estimated: true,
	}, nil
}
