package models

import "time"

// StoredObject describes one object in the document store.
type StoredObject struct {
	Key        string    `json:"key"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
	URL        string    `json:"url,omitempty"`
}

// ExtractedMetrics holds ESG scores detected in document text. A nil field
// means the category was not found; callers must treat nil as unknown, never
// as zero.
type ExtractedMetrics struct {
	Environmental *float64 `json:"environmental"`
	Social        *float64 `json:"social"`
	Governance    *float64 `json:"governance"`
	Risk          *float64 `json:"risk"`
}

// DocumentResult is the outcome of uploading and analyzing a document.
type DocumentResult struct {
	ExtractedText string           `json:"extracted_text"`
	Metrics       ExtractedMetrics `json:"esg_metrics"`
	Storage       StoredObject     `json:"storage_info"`
}
