package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/greencred/lending-service/internal/apperrors"
	"github.com/greencred/lending-service/internal/models"
	"github.com/greencred/lending-service/internal/scoring"
)

// reviewEstimate is how long after submission a decision is promised.
const reviewEstimate = 72 * time.Hour

// ApplicationRequest is the input to CreateApplication.
type ApplicationRequest struct {
	CompanyName string             `json:"company_name"`
	LoanAmount  float64            `json:"loan_amount"`
	ESGScores   *models.ESGInput   `json:"esg_scores"`
	Contact     models.ContactInfo `json:"contact_info"`
}

func validateApplicationRequest(req ApplicationRequest) error {
	var missing []string
	if strings.TrimSpace(req.CompanyName) == "" {
		missing = append(missing, "companyName")
	}
	if req.LoanAmount <= 0 {
		missing = append(missing, "loanAmount")
	}
	if req.ESGScores == nil {
		missing = append(missing, "esgScores")
	} else if _, err := scoring.ComputeScore(*req.ESGScores); err != nil {
		var ve *apperrors.ValidationError
		if errors.As(err, &ve) {
			for _, f := range ve.Fields {
				missing = append(missing, "esgScores."+f)
			}
		} else {
			return err
		}
	}
	if strings.TrimSpace(req.Contact.Email) == "" || !strings.Contains(req.Contact.Email, "@") {
		missing = append(missing, "contactInfo.email")
	}
	if len(missing) > 0 {
		return &apperrors.ValidationError{Fields: missing, Reason: "missing or invalid"}
	}
	return nil
}

// CreateApplication persists a new loan application and notifies the review
// team. The notification is fire-and-forget: a delivery failure is logged
// and never fails the creation.
func (s *Service) CreateApplication(ctx context.Context, req ApplicationRequest) (*models.Application, error) {
	if err := validateApplicationRequest(req); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	now := time.Now().UTC()
	app := &models.Application{
		ID:                  id,
		ReferenceNumber:     "GCLOAN-" + strings.ToUpper(strings.SplitN(id, "-", 2)[0]),
		CompanyName:         strings.TrimSpace(req.CompanyName),
		LoanAmount:          req.LoanAmount,
		ESGScores:           *req.ESGScores,
		Contact:             req.Contact,
		Status:              models.StatusSubmitted,
		SubmittedAt:         now,
		EstimatedCompletion: now.Add(reviewEstimate),
		CurrentStage:        models.DefaultPendingStages[0],
		CompletedStages:     append([]string(nil), models.DefaultCompletedStages...),
		PendingStages:       append([]string(nil), models.DefaultPendingStages...),
		AgentNotes:          []models.AgentNote{},
		DocumentChecklist:   models.DefaultDocumentChecklist(),
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return nil, err
	}
	s.log.Infof("Application created: %s (%s)", app.ID, app.ReferenceNumber)

	go func() {
		if err := s.notifier.SendReviewNotification(app); err != nil {
			s.log.Warnf("Review notification for %s failed: %v", app.ID, err)
		}
	}()

	return app, nil
}

// GetApplication resolves an application by UUID or by reference number.
func (s *Service) GetApplication(ctx context.Context, idOrReference string) (*models.Application, error) {
	key := strings.TrimSpace(idOrReference)
	if key == "" {
		return nil, apperrors.NewValidationError("applicationId", "application ID or reference number is required")
	}
	if strings.HasPrefix(strings.ToUpper(key), "GCLOAN-") {
		return s.repo.FindByReference(ctx, strings.ToUpper(key))
	}
	return s.repo.FindByID(ctx, key)
}

func appendNote(app *models.Application, agent, note string) {
	app.AgentNotes = append(app.AgentNotes, models.AgentNote{
		Agent:     agent,
		Note:      note,
		Timestamp: time.Now().UTC(),
	})
}

// advanceStage moves the head of the pending pipeline into the completed
// list when the application progresses.
func advanceStage(app *models.Application) {
	if len(app.PendingStages) == 0 {
		return
	}
	app.CompletedStages = append(app.CompletedStages, app.PendingStages[0])
	app.PendingStages = app.PendingStages[1:]
	if len(app.PendingStages) > 0 {
		app.CurrentStage = app.PendingStages[0]
	} else {
		app.CurrentStage = app.CompletedStages[len(app.CompletedStages)-1]
	}
}

// UpdateStatus applies a reviewer-driven status change, appending a note
// when one is given. Concurrent updates to the same application are
// serialized by the repository's version check; on conflict the transition
// is re-validated against fresh state and retried once.
func (s *Service) UpdateStatus(ctx context.Context, applicationID string, newStatus models.Status, agent, note string) (*models.Application, error) {
	if !newStatus.Valid() {
		return nil, apperrors.NewValidationError("status", "unknown status value")
	}

	for attempt := 0; ; attempt++ {
		app, err := s.repo.FindByID(ctx, applicationID)
		if err != nil {
			return nil, err
		}
		if !app.Status.CanTransition(newStatus) {
			return nil, &apperrors.InvalidTransitionError{From: string(app.Status), To: string(newStatus)}
		}

		app.Status = newStatus
		if newStatus.Terminal() || newStatus == models.StatusUnderReview {
			advanceStage(app)
		}
		if note != "" {
			if agent == "" {
				agent = "Review Agent"
			}
			appendNote(app, agent, note)
		}

		err = s.repo.Update(ctx, app)
		if err == nil {
			s.log.Infof("Application %s status updated to %s", applicationID, newStatus)
			return app, nil
		}
		if errors.Is(err, apperrors.ErrVersionConflict) && attempt == 0 {
			s.log.Warnf("Concurrent update on %s, retrying", applicationID)
			continue
		}
		return nil, err
	}
}

// ReviewPolicy decides the outcome of one automated review step. The
// production policy derives the outcome from the stored ESG scores; tests
// inject fixed policies.
type ReviewPolicy interface {
	Decide(app *models.Application) models.Status
}

// RatingPolicy approves strong ESG performers, asks weak-but-viable ones for
// more documents, and rejects the rest.
type RatingPolicy struct{}

// Decide maps the application's overall ESG score to an outcome: at least
// 70 approves, at least 50 requests documents, anything lower rejects.
func (RatingPolicy) Decide(app *models.Application) models.Status {
	score, err := scoring.ComputeScore(app.ESGScores)
	if err != nil {
		// Stored scores were validated at creation; treat corruption as a
		// documents problem rather than rejecting outright.
		return models.StatusPendingDocuments
	}
	switch {
	case score.OverallScore >= 70:
		return models.StatusApproved
	case score.OverallScore >= 50:
		return models.StatusPendingDocuments
	default:
		return models.StatusRejected
	}
}

var reviewComments = map[models.Status]string{
	models.StatusApproved:         "Excellent ESG performance. All documentation in order. Recommend approval with 2.5% discount rate.",
	models.StatusPendingDocuments: "ESG scores look good, but we need additional financial statements from the last 2 years.",
	models.StatusRejected:         "ESG scores below minimum threshold. Company needs to improve sustainability practices.",
}

var reviewNextSteps = map[models.Status]string{
	models.StatusApproved:         "Loan agreement preparation and final approval process.",
	models.StatusPendingDocuments: "Waiting for additional documentation from applicant.",
	models.StatusRejected:         "Application declined. Applicant can reapply after 6 months with improved ESG metrics.",
}

// AdvanceReview runs one automated review step: a SUBMITTED application
// first moves to UNDER_REVIEW, then the review policy decides the outcome.
func (s *Service) AdvanceReview(ctx context.Context, applicationID string) (*models.ReviewOutcome, error) {
	app, err := s.repo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if app.Status == models.StatusSubmitted || app.Status == models.StatusPendingDocuments {
		if app, err = s.UpdateStatus(ctx, applicationID, models.StatusUnderReview, "Automated Review", ""); err != nil {
			return nil, err
		}
	}
	if app.Status != models.StatusUnderReview {
		return nil, &apperrors.InvalidTransitionError{From: string(app.Status), To: string(models.StatusUnderReview)}
	}

	outcome := s.policy.Decide(app)
	comments := reviewComments[outcome]
	app, err = s.UpdateStatus(ctx, applicationID, outcome, "Automated Review", comments)
	if err != nil {
		return nil, err
	}

	result := &models.ReviewOutcome{
		ApplicationID:     applicationID,
		Outcome:           outcome,
		ReviewerComments:  comments,
		NextSteps:         reviewNextSteps[outcome],
		ReviewCompletedAt: time.Now().UTC(),
	}
	s.log.Infof("Automated review for %s completed: %s", applicationID, outcome)

	if outcome.Terminal() {
		notified := app
		go func() {
			if err := s.notifier.SendDecisionNotification(notified, *result); err != nil {
				s.log.Warnf("Decision notification for %s failed: %v", applicationID, err)
			}
		}()
	}
	return result, nil
}

// SendPendingDocumentReminders emails applicants whose applications have
// been waiting on documents longer than the cutoff. Run from the scheduler.
func (s *Service) SendPendingDocumentReminders(ctx context.Context, olderThan time.Duration) error {
	apps, err := s.repo.FindByStatus(ctx, models.StatusPendingDocuments)
	if err != nil {
		return err
	}
	cutoff := time.Now().Add(-olderThan)
	for _, app := range apps {
		if app.UpdatedAt.After(cutoff) {
			continue
		}
		if err := s.notifier.SendDocumentsReminder(app); err != nil {
			s.log.Warnf("Documents reminder for %s failed: %v", app.ID, err)
		}
	}
	return nil
}

// SweepStaleSubmissions advances the automated review for applications that
// have sat in SUBMITTED longer than the cutoff. Run from the scheduler.
func (s *Service) SweepStaleSubmissions(ctx context.Context, olderThan time.Duration) error {
	apps, err := s.repo.FindByStatus(ctx, models.StatusSubmitted)
	if err != nil {
		return err
	}
	cutoff := time.Now().Add(-olderThan)
	for _, app := range apps {
		if app.SubmittedAt.After(cutoff) {
			continue
		}
		if _, err := s.AdvanceReview(ctx, app.ID); err != nil {
			s.log.Warnf("Stale review sweep for %s failed: %v", app.ID, err)
		}
	}
	return nil
}
