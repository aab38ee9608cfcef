// Package versions provides document version lineage management: immutable
// snapshot records with per-document monotonically increasing version numbers,
// weak parent references, and rollback.
package versions

import (
	"time"

	"github.com/google/uuid"
)

// RiskScore is the coarse risk label attached to a version's analysis.
// It is opaque beyond its ordering; unknown labels are tolerated.
type RiskScore string

// Risk score labels.
const (
	RiskLow    RiskScore = "low"
	RiskMedium RiskScore = "medium"
	RiskHigh   RiskScore = "high"
)

// Metadata carries the extraction results supplied for a version.
// No parsing or OCR happens here; these values arrive from the extraction service.
type Metadata struct {
	PageCount     *int   `json:"page_count,omitempty"`
	WordCount     *int   `json:"word_count,omitempty"`
	Language      string `json:"language,omitempty"`
	ExtractedText string `json:"extracted_text"`
}

// Analysis is the externally produced document analysis. Only RiskScore is
// interpreted; Details is stored and returned untouched.
type Analysis struct {
	RiskScore RiskScore      `json:"risk_score"`
	Details   map[string]any `json:"details,omitempty"`
}

// DocumentVersion represents one immutable snapshot of a document.
// Versions are never mutated after creation and are removed only by the
// retention sweep. ParentVersionID is a weak reference: it always names a
// version of the same document, but the referent may have been swept.
type DocumentVersion struct {
	ID              uuid.UUID  `json:"id"`
	DocumentID      uuid.UUID  `json:"document_id"`
	VersionNumber   int        `json:"version_number"`
	Filename        string     `json:"filename"`
	UploadedAt      time.Time  `json:"uploaded_at"`
	Metadata        Metadata   `json:"metadata"`
	TextDigest      string     `json:"text_digest"`
	Analysis        *Analysis  `json:"analysis,omitempty"`
	ParentVersionID *uuid.UUID `json:"parent_version_id,omitempty"`
}

// CreateCommand contains the data required to create a new version.
// VersionNumber is assigned by the store, never by the caller.
type CreateCommand struct {
	DocumentID      uuid.UUID
	Filename        string
	Metadata        Metadata
	Analysis        *Analysis
	ParentVersionID *uuid.UUID
}
