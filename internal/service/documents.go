package service

import (
	"context"
	"fmt"
	"time"

	"github.com/greencred/lending-service/internal/apperrors"
	"github.com/greencred/lending-service/internal/extraction"
	"github.com/greencred/lending-service/internal/models"
)

const maxDocumentSize = 10 << 20 // 10 MB

// UploadDocument extracts text and ESG metrics from a document and stores it
// with descriptive metadata. Extraction failures surface as validation
// errors; storage failures as upstream errors.
func (s *Service) UploadDocument(ctx context.Context, companyName, fileName, documentType string, data []byte) (*models.DocumentResult, error) {
	if len(data) == 0 {
		return nil, apperrors.NewValidationError("file", "document is empty")
	}
	if len(data) > maxDocumentSize {
		return nil, apperrors.NewValidationError("file", "document exceeds the 10 MB limit")
	}
	if companyName == "" {
		companyName = "unknown"
	}
	if documentType == "" {
		documentType = "esg-report"
	}

	text, err := s.extractor.ExtractText(ctx, data)
	if err != nil {
		return nil, err
	}
	metrics := extraction.ExtractMetrics(text)

	key := documentKey(companyName, fileName)
	obj, err := s.store.Put(ctx, key, data, map[string]string{
		"company-name":     companyName,
		"document-type":    documentType,
		"original-name":    fileName,
		"upload-timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, &apperrors.UpstreamError{Service: "document-store", Err: err}
	}

	if s.signer != nil {
		token, err := s.signer.Sign(obj.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to issue download token: %w", err)
		}
		obj.URL = fmt.Sprintf("/documents/%s?token=%s", obj.Key, token)
	}

	s.log.Infof("Document stored for %s: %s (%d bytes)", companyName, obj.Key, obj.Size)
	return &models.DocumentResult{
		ExtractedText: text,
		Metrics:       metrics,
		Storage:       obj,
	}, nil
}

// GetDocument returns the raw bytes of a stored document after verifying the
// download token was issued for that key.
func (s *Service) GetDocument(ctx context.Context, key, token string) ([]byte, error) {
	if token == "" {
		return nil, apperrors.NewValidationError("token", "download token is required")
	}
	if err := s.signer.Verify(token, key); err != nil {
		return nil, apperrors.NewValidationError("token", "download token is invalid or expired")
	}
	return s.store.Get(ctx, key)
}
