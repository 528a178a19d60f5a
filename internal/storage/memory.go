package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/greencred/lending-service/internal/apperrors"
	"github.com/greencred/lending-service/internal/models"
)

type memoryObject struct {
	data       []byte
	metadata   map[string]string
	modifiedAt time.Time
}

// MemoryStore is an in-process ObjectStore for tests.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

// NewMemoryStore initializes an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]memoryObject)}
}

// Put stores a copy of the object bytes.
func (m *MemoryStore) Put(_ context.Context, key string, data []byte, metadata map[string]string) (models.StoredObject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := memoryObject{
		data:       append([]byte(nil), data...),
		metadata:   metadata,
		modifiedAt: time.Now().UTC(),
	}
	m.objects[key] = obj
	return models.StoredObject{Key: key, Size: int64(len(data)), ModifiedAt: obj.modifiedAt}, nil
}

// Get returns a copy of the object bytes.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[key]
	if !ok {
		return nil, &apperrors.NotFoundError{Resource: "document", Key: key}
	}
	return append([]byte(nil), obj.data...), nil
}

// Delete removes the object.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[key]; !ok {
		return &apperrors.NotFoundError{Resource: "document", Key: key}
	}
	delete(m.objects, key)
	return nil
}

// List returns objects under the prefix, sorted by key.
func (m *MemoryStore) List(_ context.Context, prefix string) ([]models.StoredObject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var objects []models.StoredObject
	for key, obj := range m.objects {
		if strings.HasPrefix(key, prefix) {
			objects = append(objects, models.StoredObject{
				Key:        key,
				Size:       int64(len(obj.data)),
				ModifiedAt: obj.modifiedAt,
			})
		}
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}
