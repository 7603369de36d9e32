package analysis

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres. Result and metadata payloads are
// stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

const recordColumns = `id, document_id, user_id, document_type, status, result, metadata, error_code, error_message, created_at, completed_at`

// Create inserts a new record.
func (r *PGRepo) Create(ctx context.Context, record Record) error {
	const query = `
INSERT INTO analyses (
	id, document_id, user_id, document_type, status, result, metadata, error_code, error_message, created_at, completed_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	resultPayload, err := marshalJSONB(record.Result)
	if err != nil {
		return err
	}
	metadataPayload, err := marshalJSONB(record.Metadata)
	if err != nil {
		return err
	}

	var errorCode, errorMessage sql.NullString
	if record.ErrorCode != "" {
		errorCode = sql.NullString{String: record.ErrorCode, Valid: true}
	}
	if record.ErrorMessage != "" {
		errorMessage = sql.NullString{String: record.ErrorMessage, Valid: true}
	}
	var completedAt sql.NullTime
	if record.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *record.CompletedAt, Valid: true}
	}

	_, err = r.DB.ExecContext(ctx, query,
		record.ID,
		record.DocumentID,
		record.UserID,
		record.DocumentType,
		record.Status,
		resultPayload,
		metadataPayload,
		errorCode,
		errorMessage,
		record.CreatedAt,
		completedAt,
	)
	return err
}

// GetByID returns a record by ID.
func (r *PGRepo) GetByID(ctx context.Context, recordID string) (Record, error) {
	const query = `
SELECT ` + recordColumns + `
FROM analyses
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1`
	return scanRecord(r.DB.QueryRowContext(ctx, query, recordID))
}

// ListByUser returns records for a user ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT ` + recordColumns + `
FROM analyses
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var record Record
	var result sql.NullString
	var metadata sql.NullString
	var errorCode sql.NullString
	var errorMessage sql.NullString
	var completedAt sql.NullTime
	err := row.Scan(
		&record.ID,
		&record.DocumentID,
		&record.UserID,
		&record.DocumentType,
		&record.Status,
		&result,
		&metadata,
		&errorCode,
		&errorMessage,
		&record.CreatedAt,
		&completedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	if result.Valid && result.String != "" {
		var parsed Result
		if err := json.Unmarshal([]byte(result.String), &parsed); err != nil {
			return Record{}, err
		}
		record.Result = &parsed
	}
	if metadata.Valid && metadata.String != "" {
		var parsed Metadata
		if err := json.Unmarshal([]byte(metadata.String), &parsed); err != nil {
			return Record{}, err
		}
		record.Metadata = &parsed
	}
	if errorCode.Valid {
		record.ErrorCode = errorCode.String
	}
	if errorMessage.Valid {
		record.ErrorMessage = errorMessage.String
	}
	if completedAt.Valid {
		record.CompletedAt = &completedAt.Time
	}
	return record, nil
}

func marshalJSONB(v any) (any, error) {
	switch value := v.(type) {
	case *Result:
		if value == nil {
			return nil, nil
		}
	case *Metadata:
		if value == nil {
			return nil, nil
		}
	case nil:
		return nil, nil
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(payload), nil
}

var _ Repo = (*PGRepo)(nil)
