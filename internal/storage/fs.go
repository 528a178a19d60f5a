package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/greencred/lending-service/internal/apperrors"
	"github.com/greencred/lending-service/internal/models"
)

// FSStore keeps objects on the local filesystem under a root directory.
// Metadata lives in a JSON sidecar next to each object.
type FSStore struct {
	root string
}

// NewFSStore creates the root directory if needed.
func NewFSStore(root string) (*FSStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &FSStore{root: root}, nil
}

const metaSuffix = ".meta.json"

// path maps an object key to a filesystem path, rejecting traversal.
func (s *FSStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", apperrors.NewValidationError("key", "invalid object key")
	}
	return filepath.Join(s.root, clean), nil
}

// Put writes the object and its metadata sidecar.
func (s *FSStore) Put(_ context.Context, key string, data []byte, metadata map[string]string) (models.StoredObject, error) {
	p, err := s.path(key)
	if err != nil {
		return models.StoredObject{}, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return models.StoredObject{}, fmt.Errorf("failed to create object directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return models.StoredObject{}, fmt.Errorf("failed to write object: %w", err)
	}
	if len(metadata) > 0 {
		meta, err := json.Marshal(metadata)
		if err != nil {
			return models.StoredObject{}, fmt.Errorf("failed to encode metadata: %w", err)
		}
		if err := os.WriteFile(p+metaSuffix, meta, 0o644); err != nil {
			return models.StoredObject{}, fmt.Errorf("failed to write metadata: %w", err)
		}
	}

	info, err := os.Stat(p)
	if err != nil {
		return models.StoredObject{}, fmt.Errorf("failed to stat object: %w", err)
	}
	return models.StoredObject{
		Key:        key,
		Size:       info.Size(),
		ModifiedAt: info.ModTime().UTC(),
	}, nil
}

// Get reads an object's bytes.
func (s *FSStore) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, &apperrors.NotFoundError{Resource: "document", Key: key}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return data, nil
}

// Delete removes an object and its metadata sidecar if present.
func (s *FSStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return &apperrors.NotFoundError{Resource: "document", Key: key}
		}
		return fmt.Errorf("failed to delete object: %w", err)
	}
	_ = os.Remove(p + metaSuffix)
	return nil
}

// List walks objects under the prefix, sorted by key.
func (s *FSStore) List(_ context.Context, prefix string) ([]models.StoredObject, error) {
	var objects []models.StoredObject
	err := filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || strings.HasSuffix(path, metaSuffix) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		objects = append(objects, models.StoredObject{
			Key:        key,
			Size:       info.Size(),
			ModifiedAt: info.ModTime().UTC(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}
