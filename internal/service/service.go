// Package service implements the business operations behind the HTTP
// handlers: scoring, the application review workflow, document intake, chat
// and company lookup.
package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/greencred/lending-service/internal/apperrors"
	"github.com/greencred/lending-service/internal/config"
	"github.com/greencred/lending-service/internal/extraction"
	"github.com/greencred/lending-service/internal/integrations/assistant"
	"github.com/greencred/lending-service/internal/integrations/esgdata"
	"github.com/greencred/lending-service/internal/models"
	"github.com/greencred/lending-service/internal/repository"
	"github.com/greencred/lending-service/internal/scoring"
	"github.com/greencred/lending-service/internal/storage"
	"github.com/greencred/lending-service/internal/utils/email"
)

// Service handles business logic.
type Service struct {
	repo      repository.ApplicationRepository
	store     storage.ObjectStore
	signer    *storage.TokenSigner
	extractor extraction.Extractor
	assistant assistant.Completer
	companies esgdata.DataSource
	notifier  email.Notifier
	policy    ReviewPolicy
	log       *logrus.Logger
	config    *config.Config
}

// NewService initializes a new service.
func NewService(
	repo repository.ApplicationRepository,
	store storage.ObjectStore,
	signer *storage.TokenSigner,
	extractor extraction.Extractor,
	completer assistant.Completer,
	companies esgdata.DataSource,
	notifier email.Notifier,
	policy ReviewPolicy,
	log *logrus.Logger,
	cfg *config.Config,
) *Service {
	return &Service{
		repo:      repo,
		store:     store,
		signer:    signer,
		extractor: extractor,
		assistant: completer,
		companies: companies,
		notifier:  notifier,
		policy:    policy,
		log:       log,
		config:    cfg,
	}
}

// ScoreResult bundles everything computed for one scoring request.
type ScoreResult struct {
	CompanyName     string                  `json:"company_name"`
	ESGScore        models.ESGScore         `json:"esg_score"`
	LoanTerms       models.LoanTerms        `json:"loan_terms"`
	Insights        []models.Insight        `json:"insights"`
	Recommendations []models.Recommendation `json:"recommendations"`
}

// Score computes the ESG score, loan terms, insights and recommendations for
// one request. Pure and side-effect-free; safe to call concurrently.
func (s *Service) Score(esgData models.ESGInput, loanAmount float64, companyName string) (*ScoreResult, error) {
	score, err := scoring.ComputeScore(esgData)
	if err != nil {
		return nil, err
	}
	terms, err := scoring.ComputeLoanTerms(loanAmount, score, s.config.BaseRate, s.config.TermYears)
	if err != nil {
		return nil, err
	}

	if companyName == "" {
		companyName = "Unknown Company"
	}
	s.log.Infof("Scored %s: overall %.1f rating %s discount %.1f", companyName, score.OverallScore, score.Rating, score.Discount)

	return &ScoreResult{
		CompanyName:     companyName,
		ESGScore:        score,
		LoanTerms:       terms,
		Insights:        scoring.Insights(score.Breakdown),
		Recommendations: scoring.Recommendations(score),
	}, nil
}

// Chat forwards a conversation turn to the assistant. Failures degrade to a
// flagged canned reply inside the client, so chat never blocks scoring.
func (s *Service) Chat(ctx context.Context, message string, history []assistant.Message, scores *models.ESGInput) (assistant.Reply, error) {
	if strings.TrimSpace(message) == "" {
		return assistant.Reply{}, apperrors.NewValidationError("message", "message is required")
	}
	return s.assistant.Complete(ctx, message, history, scores)
}

// LookupCompany resolves a best-effort public ESG estimate and matching
// report references for a company.
func (s *Service) LookupCompany(ctx context.Context, companyName string) (models.CompanyESG, []models.ReportRef, error) {
	if strings.TrimSpace(companyName) == "" {
		return models.CompanyESG{}, nil, apperrors.NewValidationError("companyName", "company name is required")
	}
	data, err := s.companies.Lookup(ctx, companyName)
	if err != nil {
		return models.CompanyESG{}, nil, err
	}
	return data, esgdata.SearchReports(companyName), nil
}

// documentKey builds the storage key for an uploaded document, keeping the
// original extension.
func documentKey(companyName, fileName string) string {
	ext := path.Ext(fileName)
	safeCompany := strings.ToLower(strings.TrimSpace(companyName))
	safeCompany = strings.ReplaceAll(safeCompany, "/", "-")
	return fmt.Sprintf("%s/esg-document-%s%s", safeCompany, uuid.New().String(), ext)
}
