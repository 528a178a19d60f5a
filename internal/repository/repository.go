// Package repository persists loan applications. The Postgres implementation
// follows the service schema in greencred.applications; an in-memory
// implementation backs tests and local development.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/greencred/lending-service/internal/apperrors"
	"github.com/greencred/lending-service/internal/models"
)

// ApplicationRepository stores and retrieves loan applications. Updates use
// optimistic versioning: Update fails with apperrors.ErrVersionConflict when
// the stored version no longer matches the one on the passed application.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	FindByID(ctx context.Context, id string) (*models.Application, error)
	FindByReference(ctx context.Context, reference string) (*models.Application, error)
	Update(ctx context.Context, app *models.Application) error
	FindByStatus(ctx context.Context, status models.Status) ([]*models.Application, error)
}

// Repository provides Postgres-backed application storage.
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const applicationColumns = `
	id, reference_number, company_name, loan_amount, esg_scores, contact_info,
	status, submitted_at, estimated_completion, current_stage,
	completed_stages, pending_stages, agent_notes, document_checklist,
	version, updated_at`

// Create inserts a new application. The reference number carries a unique
// index so lookups by reference never fall back to deriving it from the ID.
func (r *Repository) Create(ctx context.Context, app *models.Application) error {
	scores, err := json.Marshal(app.ESGScores)
	if err != nil {
		return fmt.Errorf("failed to encode esg scores: %w", err)
	}
	contact, err := json.Marshal(app.Contact)
	if err != nil {
		return fmt.Errorf("failed to encode contact info: %w", err)
	}
	notes, err := json.Marshal(app.AgentNotes)
	if err != nil {
		return fmt.Errorf("failed to encode agent notes: %w", err)
	}
	checklist, err := json.Marshal(app.DocumentChecklist)
	if err != nil {
		return fmt.Errorf("failed to encode document checklist: %w", err)
	}

	query := `
		INSERT INTO greencred.applications
			(id, reference_number, company_name, loan_amount, esg_scores,
			 contact_info, status, submitted_at, estimated_completion,
			 current_stage, completed_stages, pending_stages, agent_notes,
			 document_checklist, version, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 1, CURRENT_TIMESTAMP)
		RETURNING version, updated_at`
	err = r.db.QueryRowContext(ctx, query,
		app.ID, app.ReferenceNumber, app.CompanyName, app.LoanAmount, scores,
		contact, string(app.Status), app.SubmittedAt, app.EstimatedCompletion,
		app.CurrentStage, pq.Array(app.CompletedStages), pq.Array(app.PendingStages),
		notes, checklist).
		Scan(&app.Version, &app.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*models.Application, error) {
	app := &models.Application{}
	var (
		scores, contact, notes, checklist []byte
		status                            string
		completed, pending                pq.StringArray
	)
	err := row.Scan(&app.ID, &app.ReferenceNumber, &app.CompanyName, &app.LoanAmount,
		&scores, &contact, &status, &app.SubmittedAt, &app.EstimatedCompletion,
		&app.CurrentStage, &completed, &pending, &notes, &checklist,
		&app.Version, &app.UpdatedAt)
	if err != nil {
		return nil, err
	}

	app.Status = models.Status(status)
	app.CompletedStages = completed
	app.PendingStages = pending
	if err := json.Unmarshal(scores, &app.ESGScores); err != nil {
		return nil, fmt.Errorf("failed to decode esg scores: %w", err)
	}
	if err := json.Unmarshal(contact, &app.Contact); err != nil {
		return nil, fmt.Errorf("failed to decode contact info: %w", err)
	}
	if err := json.Unmarshal(notes, &app.AgentNotes); err != nil {
		return nil, fmt.Errorf("failed to decode agent notes: %w", err)
	}
	if err := json.Unmarshal(checklist, &app.DocumentChecklist); err != nil {
		return nil, fmt.Errorf("failed to decode document checklist: %w", err)
	}
	return app, nil
}

func (r *Repository) findOne(ctx context.Context, query, key string) (*models.Application, error) {
	app, err := scanApplication(r.db.QueryRowContext(ctx, query, key))
	if err == sql.ErrNoRows {
		return nil, &apperrors.NotFoundError{Resource: "application", Key: key}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return app, nil
}

// FindByID retrieves an application by its UUID.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM greencred.applications WHERE id = $1`
	return r.findOne(ctx, query, id)
}

// FindByReference retrieves an application by its reference number.
func (r *Repository) FindByReference(ctx context.Context, reference string) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM greencred.applications WHERE reference_number = $1`
	return r.findOne(ctx, query, reference)
}

// Update writes application state guarded by the optimistic version check.
func (r *Repository) Update(ctx context.Context, app *models.Application) error {
	notes, err := json.Marshal(app.AgentNotes)
	if err != nil {
		return fmt.Errorf("failed to encode agent notes: %w", err)
	}
	checklist, err := json.Marshal(app.DocumentChecklist)
	if err != nil {
		return fmt.Errorf("failed to encode document checklist: %w", err)
	}

	query := `
		UPDATE greencred.applications
		SET status = $1, current_stage = $2, completed_stages = $3,
		    pending_stages = $4, agent_notes = $5, document_checklist = $6,
		    version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7 AND version = $8
		RETURNING version, updated_at`
	err = r.db.QueryRowContext(ctx, query,
		string(app.Status), app.CurrentStage, pq.Array(app.CompletedStages),
		pq.Array(app.PendingStages), notes, checklist, app.ID, app.Version).
		Scan(&app.Version, &app.UpdatedAt)
	if err == sql.ErrNoRows {
		// Either the row is gone or another reviewer bumped the version first.
		if _, findErr := r.FindByID(ctx, app.ID); findErr != nil {
			return findErr
		}
		return apperrors.ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	return nil
}

// FindByStatus lists applications currently in the given status, oldest
// first. Used by the periodic reminder and review sweeps.
func (r *Repository) FindByStatus(ctx context.Context, status models.Status) ([]*models.Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM greencred.applications WHERE status = $1 ORDER BY submitted_at`
	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}
