package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/greencred/lending-service/internal/config"
	"github.com/greencred/lending-service/internal/models"
)

// Notifier delivers workflow notifications. The service layer treats every
// send as fire-and-forget: failures are logged, never propagated into the
// application lifecycle.
type Notifier interface {
	SendReviewNotification(app *models.Application) error
	SendDecisionNotification(app *models.Application, outcome models.ReviewOutcome) error
	SendDocumentsReminder(app *models.Application) error
}

// Sender delivers notifications via SMTP.
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender.
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %v: %v", e.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Infof("Email sent to %v: %s", e.To, e.Subject)
	return nil
}

// SendReviewNotification tells the review team a new application arrived.
func (s *Sender) SendReviewNotification(app *models.Application) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{s.cfg.ReviewTeamEmail}
	e.Subject = fmt.Sprintf("New loan application from %s", app.CompanyName)

	body := fmt.Sprintf(
		"A new loan application requires ESG review.\n\n"+
			"Company: %s\n"+
			"Reference: %s\n"+
			"Requested amount: %.2f\n"+
			"Submitted: %s\n"+
			"Expected review time: 2-3 business days\n",
		app.CompanyName, app.ReferenceNumber, app.LoanAmount,
		app.SubmittedAt.Format("2006-01-02 15:04:05"),
	)
	body += "\nGreenCred Lending Service"
	e.Text = []byte(body)

	return s.send(e)
}

// SendDecisionNotification tells the applicant about a review outcome.
func (s *Sender) SendDecisionNotification(app *models.Application, outcome models.ReviewOutcome) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{app.Contact.Email}
	e.Subject = fmt.Sprintf("Application %s: %s", app.ReferenceNumber, outcome.Outcome)

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your loan application %s has been reviewed.\n\n"+
			"Outcome: %s\n"+
			"Reviewer comments: %s\n"+
			"Next steps: %s\n",
		app.Contact.Name, app.ReferenceNumber, outcome.Outcome,
		outcome.ReviewerComments, outcome.NextSteps,
	)
	body += "\nBest regards,\nGreenCred Lending Service"
	e.Text = []byte(body)

	return s.send(e)
}

// SendDocumentsReminder nudges an applicant whose application has been
// waiting on documents.
func (s *Sender) SendDocumentsReminder(app *models.Application) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{app.Contact.Email}
	e.Subject = fmt.Sprintf("Documents needed for application %s", app.ReferenceNumber)

	waiting := time.Since(app.UpdatedAt).Round(time.Hour)
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your application %s has been waiting on additional documents for %s.\n"+
			"Please upload the missing documents so the review can continue.\n",
		app.Contact.Name, app.ReferenceNumber, waiting,
	)
	body += "\nBest regards,\nGreenCred Lending Service"
	e.Text = []byte(body)

	return s.send(e)
}
