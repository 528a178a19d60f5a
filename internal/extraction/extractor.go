// Package extraction pulls text out of uploaded documents and scans it for
// ESG metrics with keyword heuristics. The heuristics are best-effort, not
// authoritative: a category that matches nothing stays nil and must be
// treated as unknown by callers, never defaulted to zero.
package extraction

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/greencred/lending-service/internal/apperrors"
)

// Extractor converts document bytes to text. Implementations may call remote
// OCR services; the local implementation handles plain-text documents.
type Extractor interface {
	ExtractText(ctx context.Context, document []byte) (string, error)
}

// PlainTextExtractor accepts UTF-8 text documents as-is.
type PlainTextExtractor struct{}

// NewPlainTextExtractor returns the local extractor.
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// ExtractText validates and normalizes the document as UTF-8 text.
func (e *PlainTextExtractor) ExtractText(_ context.Context, document []byte) (string, error) {
	if len(document) == 0 {
		return "", apperrors.NewValidationError("file", "document is empty")
	}
	if !utf8.Valid(document) {
		return "", apperrors.NewValidationError("file", "document is not valid UTF-8 text")
	}
	return strings.ReplaceAll(string(document), "\r\n", "\n"), nil
}
