package versions

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kestrelworks/redline/pkg/pagination"
	"github.com/kestrelworks/redline/pkg/query"
	"github.com/kestrelworks/redline/pkg/repository"
	"github.com/zeebo/blake3"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a version repository backed by the given database.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "versions"),
	}
}

// Numbers are allocated from a counter row that outlives the version rows, so
// a document whose versions were all swept continues where it left off.
const allocateNumber = `INSERT INTO document_version_counters (document_id, last_number)
	VALUES ($1, 1)
	ON CONFLICT (document_id) DO UPDATE SET last_number = document_version_counters.last_number + 1
	RETURNING last_number`

const peekNumber = `SELECT COALESCE(
		(SELECT last_number FROM document_version_counters WHERE document_id = $1), 0) + 1`

const insertVersion = `INSERT INTO document_versions
		(id, document_id, version_number, filename, page_count, word_count, language, extracted_text, text_digest, analysis, parent_version_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING id, document_id, version_number, filename, uploaded_at, page_count, word_count, language, extracted_text, text_digest, analysis, parent_version_id`

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*DocumentVersion, error) {
	analysisRaw, err := marshalAnalysis(cmd.Analysis)
	if err != nil {
		return nil, err
	}

	var language *string
	if cmd.Metadata.Language != "" {
		language = &cmd.Metadata.Language
	}

	digest := textDigest(cmd.Metadata.ExtractedText)

	ver, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (DocumentVersion, error) {
		// Serializes number assignment per document; independent documents
		// take independent locks and proceed in parallel.
		if _, err := tx.ExecContext(ctx,
			`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
			cmd.DocumentID.String(),
		); err != nil {
			return DocumentVersion{}, fmt.Errorf("acquire document lock: %w", err)
		}

		if cmd.ParentVersionID != nil {
			if err := r.validateParent(ctx, tx, cmd.DocumentID, *cmd.ParentVersionID); err != nil {
				return DocumentVersion{}, err
			}
		}

		var number int
		if err := tx.QueryRowContext(ctx, allocateNumber, cmd.DocumentID).Scan(&number); err != nil {
			return DocumentVersion{}, fmt.Errorf("allocate version number: %w", err)
		}

		return repository.QueryOne(ctx, tx, insertVersion, []any{
			uuid.New(), cmd.DocumentID, number, cmd.Filename,
			cmd.Metadata.PageCount, cmd.Metadata.WordCount, language, cmd.Metadata.ExtractedText,
			digest, analysisRaw, cmd.ParentVersionID,
		}, scanVersion)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("version created",
		"id", ver.ID,
		"document_id", ver.DocumentID,
		"version_number", ver.VersionNumber,
	)
	return &ver, nil
}

func (r *repo) validateParent(ctx context.Context, tx *sql.Tx, documentID, parentID uuid.UUID) error {
	q, args := query.NewBuilder(projection, defaultSort).BuildSingle("Id", parentID)

	parent, err := repository.QueryOne(ctx, tx, q, args, scanVersion)
	if err != nil {
		return repository.MapError(fmt.Errorf("parent version: %w", err), ErrNotFound, ErrDuplicate)
	}
	if parent.DocumentID != documentID {
		return ErrDifferentDocument
	}
	return nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*DocumentVersion, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildSingle("Id", id)

	ver, err := repository.QueryOne(ctx, r.db, q, args, scanVersion)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &ver, nil
}

func (r *repo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]DocumentVersion, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("DocumentId", documentID).
		BuildSelect()

	vers, err := repository.QueryMany(ctx, r.db, q, args, scanVersion)
	if err != nil {
		return nil, fmt.Errorf("query versions: %w", err)
	}
	return vers, nil
}

func (r *repo) ListPage(ctx context.Context, documentID uuid.UUID, page pagination.PageRequest) ([]DocumentVersion, int, error) {
	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("DocumentId", documentID)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count versions: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Limit, page.Offset)
	vers, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanVersion)
	if err != nil {
		return nil, 0, fmt.Errorf("query versions: %w", err)
	}

	return vers, total, nil
}

func (r *repo) Latest(ctx context.Context, documentID uuid.UUID) (*DocumentVersion, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("DocumentId", documentID).
		OrderBy("VersionNumber", true).
		BuildPage(1, 0)

	vers, err := repository.QueryMany(ctx, r.db, q, args, scanVersion)
	if err != nil {
		return nil, fmt.Errorf("query latest version: %w", err)
	}
	if len(vers) == 0 {
		return nil, ErrNotFound
	}
	return &vers[0], nil
}

func (r *repo) NextVersionNumber(ctx context.Context, documentID uuid.UUID) (int, error) {
	var next int
	if err := r.db.QueryRowContext(ctx, peekNumber, documentID).Scan(&next); err != nil {
		return 0, fmt.Errorf("next version number: %w", err)
	}
	return next, nil
}

func (r *repo) Rollback(ctx context.Context, documentID, targetVersionID uuid.UUID, filename string) (*DocumentVersion, error) {
	target, err := r.Find(ctx, targetVersionID)
	if err != nil {
		return nil, err
	}
	if target.DocumentID != documentID {
		return nil, ErrDifferentDocument
	}

	ver, err := r.Create(ctx, CreateCommand{
		DocumentID:      documentID,
		Filename:        filename,
		Metadata:        target.Metadata,
		Analysis:        target.Analysis,
		ParentVersionID: &target.ID,
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("version rolled back",
		"document_id", documentID,
		"target_version", target.VersionNumber,
		"new_version", ver.VersionNumber,
	)
	return ver, nil
}

func (r *repo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	// Counter rows are left in place so swept documents keep their numbering.
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereBefore("UploadedAt", cutoff).
		BuildDelete()

	result, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("delete versions: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if affected > 0 {
		r.logger.Info("versions deleted", "cutoff", cutoff, "count", affected)
	}
	return int(affected), nil
}

func textDigest(text string) string {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
