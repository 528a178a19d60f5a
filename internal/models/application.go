package models

import "time"

// Status is the lifecycle stage of a loan application.
type Status string

const (
	StatusSubmitted        Status = "SUBMITTED"
	StatusUnderReview      Status = "UNDER_REVIEW"
	StatusApproved         Status = "APPROVED"
	StatusRejected         Status = "REJECTED"
	StatusPendingDocuments Status = "PENDING_DOCUMENTS"
)

// allowedTransitions is the application status graph. APPROVED and REJECTED
// are terminal; PENDING_DOCUMENTS can go back to UNDER_REVIEW on
// resubmission.
var allowedTransitions = map[Status][]Status{
	StatusSubmitted:        {StatusUnderReview},
	StatusUnderReview:      {StatusApproved, StatusRejected, StatusPendingDocuments},
	StatusPendingDocuments: {StatusUnderReview},
	StatusApproved:         {},
	StatusRejected:         {},
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// Terminal reports whether no further transitions are allowed from s.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransition reports whether the graph allows moving from s to next.
func (s Status) CanTransition(next Status) bool {
	for _, t := range allowedTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// AgentNote is a single reviewer note on an application.
type AgentNote struct {
	Agent     string    `json:"agent"`
	Note      string    `json:"note"`
	Timestamp time.Time `json:"timestamp"`
}

// ContactInfo identifies the applicant contact for notifications.
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Application is a submitted loan application. The workflow service owns its
// lifecycle; everything else only reads it.
type Application struct {
	ID                  string          `json:"application_id"`
	ReferenceNumber     string          `json:"reference_number"`
	CompanyName         string          `json:"company_name"`
	LoanAmount          float64         `json:"loan_amount"`
	ESGScores           ESGInput        `json:"esg_scores"`
	Contact             ContactInfo     `json:"contact_info"`
	Status              Status          `json:"status"`
	SubmittedAt         time.Time       `json:"submitted_at"`
	EstimatedCompletion time.Time       `json:"estimated_completion_date"`
	CurrentStage        string          `json:"current_stage"`
	CompletedStages     []string        `json:"completed_stages"`
	PendingStages       []string        `json:"pending_stages"`
	AgentNotes          []AgentNote     `json:"agent_notes"`
	DocumentChecklist   map[string]bool `json:"document_checklist"`
	Version             int             `json:"-"` // optimistic concurrency counter
	UpdatedAt           time.Time       `json:"updated_at"`
}

// Default stage pipeline for a new application.
var (
	DefaultCompletedStages = []string{"Application Submitted", "Initial Validation"}
	DefaultPendingStages   = []string{"ESG Document Review", "Financial Assessment", "Final Approval"}
)

// DefaultDocumentChecklist returns the checklist initialized on creation.
func DefaultDocumentChecklist() map[string]bool {
	return map[string]bool{
		"esgReport":           false,
		"financialStatements": false,
		"businessPlan":        false,
		"companyRegistration": false,
	}
}

// ReviewOutcome is the result of one automated review step.
type ReviewOutcome struct {
	ApplicationID     string    `json:"application_id"`
	Outcome           Status    `json:"review_outcome"`
	ReviewerComments  string    `json:"reviewer_comments"`
	NextSteps         string    `json:"next_steps"`
	ReviewCompletedAt time.Time `json:"review_completed_at"`
}
