package versions

import (
	"encoding/json"
	"fmt"

	"github.com/kestrelworks/redline/pkg/query"
	"github.com/kestrelworks/redline/pkg/repository"
)

var projection = query.NewProjectionMap("public", "document_versions", "v").
	Project("id", "Id").
	Project("document_id", "DocumentId").
	Project("version_number", "VersionNumber").
	Project("filename", "Filename").
	Project("uploaded_at", "UploadedAt").
	Project("page_count", "PageCount").
	Project("word_count", "WordCount").
	Project("language", "Language").
	Project("extracted_text", "ExtractedText").
	Project("text_digest", "TextDigest").
	Project("analysis", "Analysis").
	Project("parent_version_id", "ParentVersionId")

const defaultSort = "VersionNumber"

func scanVersion(s repository.Scanner) (DocumentVersion, error) {
	var (
		v        DocumentVersion
		language *string
		raw      []byte
	)

	err := s.Scan(
		&v.ID,
		&v.DocumentID,
		&v.VersionNumber,
		&v.Filename,
		&v.UploadedAt,
		&v.Metadata.PageCount,
		&v.Metadata.WordCount,
		&language,
		&v.Metadata.ExtractedText,
		&v.TextDigest,
		&raw,
		&v.ParentVersionID,
	)
	if err != nil {
		return v, err
	}

	if language != nil {
		v.Metadata.Language = *language
	}

	if len(raw) > 0 {
		var a Analysis
		if err := json.Unmarshal(raw, &a); err != nil {
			return v, fmt.Errorf("decode analysis: %w", err)
		}
		v.Analysis = &a
	}

	return v, nil
}

func marshalAnalysis(a *Analysis) (any, error) {
	if a == nil {
		return nil, nil
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}
	return raw, nil
}
