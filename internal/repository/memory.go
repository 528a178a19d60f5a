package repository

import (
	"context"
	"sync"
	"time"

	"github.com/greencred/lending-service/internal/apperrors"
	"github.com/greencred/lending-service/internal/models"
)

// MemoryRepository is an in-process ApplicationRepository used in tests and
// local development. It honors the same optimistic versioning contract as
// the Postgres repository.
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]*models.Application
	byRef map[string]string // reference number -> application ID
}

// NewMemoryRepository initializes an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:  make(map[string]*models.Application),
		byRef: make(map[string]string),
	}
}

func cloneApplication(app *models.Application) *models.Application {
	cp := *app
	cp.CompletedStages = append([]string(nil), app.CompletedStages...)
	cp.PendingStages = append([]string(nil), app.PendingStages...)
	cp.AgentNotes = append([]models.AgentNote(nil), app.AgentNotes...)
	cp.DocumentChecklist = make(map[string]bool, len(app.DocumentChecklist))
	for k, v := range app.DocumentChecklist {
		cp.DocumentChecklist[k] = v
	}
	return &cp
}

// Create stores a new application and indexes its reference number.
func (m *MemoryRepository) Create(_ context.Context, app *models.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	app.Version = 1
	app.UpdatedAt = time.Now().UTC()
	m.byID[app.ID] = cloneApplication(app)
	m.byRef[app.ReferenceNumber] = app.ID
	return nil
}

// FindByID retrieves an application by its UUID.
func (m *MemoryRepository) FindByID(_ context.Context, id string) (*models.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	app, ok := m.byID[id]
	if !ok {
		return nil, &apperrors.NotFoundError{Resource: "application", Key: id}
	}
	return cloneApplication(app), nil
}

// FindByReference retrieves an application through the reference index.
func (m *MemoryRepository) FindByReference(_ context.Context, reference string) (*models.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byRef[reference]
	if !ok {
		return nil, &apperrors.NotFoundError{Resource: "application", Key: reference}
	}
	return cloneApplication(m.byID[id]), nil
}

// Update applies changes guarded by the optimistic version check.
func (m *MemoryRepository) Update(_ context.Context, app *models.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.byID[app.ID]
	if !ok {
		return &apperrors.NotFoundError{Resource: "application", Key: app.ID}
	}
	if stored.Version != app.Version {
		return apperrors.ErrVersionConflict
	}

	app.Version++
	app.UpdatedAt = time.Now().UTC()
	m.byID[app.ID] = cloneApplication(app)
	return nil
}

// FindByStatus lists applications in the given status, oldest first.
func (m *MemoryRepository) FindByStatus(_ context.Context, status models.Status) ([]*models.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var apps []*models.Application
	for _, app := range m.byID {
		if app.Status == status {
			apps = append(apps, cloneApplication(app))
		}
	}
	for i := 1; i < len(apps); i++ {
		for j := i; j > 0 && apps[j].SubmittedAt.Before(apps[j-1].SubmittedAt); j-- {
			apps[j], apps[j-1] = apps[j-1], apps[j]
		}
	}
	return apps, nil
}
