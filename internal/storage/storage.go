// Package storage provides document object storage behind a narrow
// interface, so the filesystem implementation can be swapped for a cloud
// bucket without touching callers.
package storage

import (
	"context"

	"github.com/greencred/lending-service/internal/models"
)

// ObjectStore persists uploaded documents and lists them by key prefix.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, metadata map[string]string) (models.StoredObject, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]models.StoredObject, error)
}
