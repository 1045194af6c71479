package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/eshmelev/dropspace/internal/common"
	"github.com/eshmelev/dropspace/internal/dbx"
	"github.com/eshmelev/dropspace/internal/models"
)

// allowedFilterFields whitelists the columns usable in Equal filters.
var allowedFilterFields = map[string]struct{}{
	"owner_id":  {},
	"extension": {},
	"mime_type": {},
	"public":    {},
}

const recordColumns = `id, owner_id, filename, extension, mime_type, size_bytes, size_label,
		view_url, preview_url, access_code, public, created_at, updated_at`

// PostgresStore implements Store over a dbx.DBTX (*sql.DB or *sql.Tx).
// All collections share one documents table partitioned by the database
// and collection columns.
type PostgresStore struct {
	db dbx.DBTX
}

func NewPostgresStore(db dbx.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, database, collection, id string, fields models.DocumentFields) (*models.DocumentRecord, error) {
	query := `
		INSERT INTO documents (database_id, collection_id, id, owner_id, filename, extension,
			mime_type, size_bytes, size_label, view_url, preview_url, access_code, public,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := s.db.ExecContext(ctx, query,
		database, collection, id, fields.OwnerID, fields.Filename, fields.Extension,
		fields.MimeType, fields.SizeBytes, fields.SizeLabel, fields.ViewURL, fields.PreviewURL,
		fields.AccessCode, fields.Public, fields.CreatedAt, fields.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create document %s: %w", id, err)
	}

	return &models.DocumentRecord{
		ID:         id,
		OwnerID:    fields.OwnerID,
		Filename:   fields.Filename,
		Extension:  fields.Extension,
		MimeType:   fields.MimeType,
		SizeBytes:  fields.SizeBytes,
		SizeLabel:  fields.SizeLabel,
		ViewURL:    fields.ViewURL,
		PreviewURL: fields.PreviewURL,
		AccessCode: fields.AccessCode,
		Public:     fields.Public,
		CreatedAt:  fields.CreatedAt,
		UpdatedAt:  fields.UpdatedAt,
	}, nil
}

func (s *PostgresStore) Get(ctx context.Context, database, collection, id string) (*models.DocumentRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM documents
		WHERE database_id=$1 AND collection_id=$2 AND id=$3`

	row := s.db.QueryRowContext(ctx, query, database, collection, id)
	rec, err := scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	return rec, nil
}

func (s *PostgresStore) List(ctx context.Context, database, collection string, opts ...ListOption) (*ListResult, error) {
	q := ResolveOptions(opts...)

	var sb strings.Builder
	sb.WriteString(`SELECT COUNT(*) OVER() AS total, ` + recordColumns + ` FROM documents
		WHERE database_id=$1 AND collection_id=$2`)
	args := []any{database, collection}

	for _, f := range q.Filters {
		if _, ok := allowedFilterFields[f.Field]; !ok {
			return nil, fmt.Errorf("filter on field %q not supported", f.Field)
		}
		args = append(args, f.Value)
		fmt.Fprintf(&sb, " AND %s=$%d", f.Field, len(args))
	}

	args = append(args, q.Limit)
	fmt.Fprintf(&sb, " ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	result := &ListResult{}
	for rows.Next() {
		var total int
		rec, err := scanRecord(func(dest ...any) error {
			return rows.Scan(append([]any{&total}, dest...)...)
		})
		if err != nil {
			return nil, err
		}
		result.Total = total
		result.Documents = append(result.Documents, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *PostgresStore) Update(ctx context.Context, database, collection, id string, patch Patch) (*models.DocumentRecord, error) {
	if patch.Public == nil {
		return s.Get(ctx, database, collection, id)
	}

	query := `UPDATE documents SET public=$4, updated_at=now()
		WHERE database_id=$1 AND collection_id=$2 AND id=$3
		RETURNING ` + recordColumns

	row := s.db.QueryRowContext(ctx, query, database, collection, id, *patch.Public)
	rec, err := scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("update document %s: %w", id, err)
	}
	return rec, nil
}

func (s *PostgresStore) Delete(ctx context.Context, database, collection, id string) error {
	query := `DELETE FROM documents WHERE database_id=$1 AND collection_id=$2 AND id=$3`

	res, err := s.db.ExecContext(ctx, query, database, collection, id)
	if err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanRecord(scan func(dest ...any) error) (*models.DocumentRecord, error) {
	var rec models.DocumentRecord
	err := scan(
		&rec.ID, &rec.OwnerID, &rec.Filename, &rec.Extension, &rec.MimeType,
		&rec.SizeBytes, &rec.SizeLabel, &rec.ViewURL, &rec.PreviewURL,
		&rec.AccessCode, &rec.Public, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
