// Package postgres implements the store contract on PostgreSQL via the pgx
// stdlib driver. Cascading writes run inside one transaction.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/shelfd/shelfd/internal/ids"
	"github.com/shelfd/shelfd/internal/model"
	"github.com/shelfd/shelfd/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS folders (
    folder_id     TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    name_norm     TEXT NOT NULL UNIQUE,
    archived      BOOLEAN NOT NULL DEFAULT FALSE,
    creation_time TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS documents (
    document_id   TEXT PRIMARY KEY,
    folder_id     TEXT NOT NULL REFERENCES folders(folder_id) ON DELETE CASCADE,
    name          TEXT NOT NULL,
    name_norm     TEXT NOT NULL UNIQUE,
    archived      BOOLEAN NOT NULL DEFAULT FALSE,
    creation_time TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_folder ON documents(folder_id);
`

// EnsureSchema creates the tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

// NewWithDB constructs a Postgres-backed store over an opened database.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Folders() store.Folders     { return &folders{db: s.db} }
func (s *pgStore) Documents() store.Documents { return &documents{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func norm(name string) string { return strings.ToLower(name) }

// isUniqueViolation reports whether err is a PostgreSQL unique_violation
// (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// --- Folders ---

type folders struct{ db *sql.DB }

func (f *folders) Create(ctx context.Context, in *model.Folder) (*model.Folder, error) {
	id := in.FolderID
	if id == "" {
		id = ids.New()
	}
	now := time.Now().UTC()
	_, err := f.db.ExecContext(ctx, `
        INSERT INTO folders (folder_id, name, name_norm, archived, creation_time)
        VALUES ($1, $2, $3, FALSE, $4)
    `, id, in.Name, norm(in.Name), now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("folder %q: %w", in.Name, model.ErrDuplicateName)
		}
		return nil, err
	}
	return &model.Folder{FolderID: id, Name: in.Name, Archived: false, CreationTime: now}, nil
}

func (f *folders) GetByID(ctx context.Context, folderID string) (*model.Folder, error) {
	var out model.Folder
	row := f.db.QueryRowContext(ctx, `
        SELECT folder_id, name, archived, creation_time FROM folders WHERE folder_id = $1
    `, folderID)
	if err := row.Scan(&out.FolderID, &out.Name, &out.Archived, &out.CreationTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("folder %s: %w", folderID, model.ErrFolderNotFound)
		}
		return nil, err
	}
	return &out, nil
}

func (f *folders) GetByName(ctx context.Context, name string) (*model.Folder, error) {
	var out model.Folder
	row := f.db.QueryRowContext(ctx, `
        SELECT folder_id, name, archived, creation_time FROM folders WHERE name_norm = $1
    `, norm(name))
	if err := row.Scan(&out.FolderID, &out.Name, &out.Archived, &out.CreationTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("folder %q: %w", name, model.ErrFolderNotFound)
		}
		return nil, err
	}
	return &out, nil
}

func (f *folders) List(ctx context.Context) ([]*model.Folder, error) {
	rows, err := f.db.QueryContext(ctx, `
        SELECT folder_id, name, archived, creation_time
        FROM folders ORDER BY creation_time, folder_id
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []*model.Folder
	for rows.Next() {
		var out model.Folder
		if err := rows.Scan(&out.FolderID, &out.Name, &out.Archived, &out.CreationTime); err != nil {
			return nil, err
		}
		res = append(res, &out)
	}
	return res, rows.Err()
}

func (f *folders) SetArchived(ctx context.Context, folderID string, archived bool) (*model.Folder, error) {
	tx, err := f.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var out model.Folder
	row := tx.QueryRowContext(ctx, `
        UPDATE folders SET archived = $1 WHERE folder_id = $2
        RETURNING folder_id, name, archived, creation_time
    `, archived, folderID)
	if err := row.Scan(&out.FolderID, &out.Name, &out.Archived, &out.CreationTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("folder %s: %w", folderID, model.ErrFolderNotFound)
		}
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE documents SET archived = $1 WHERE folder_id = $2`, archived, folderID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *folders) Delete(ctx context.Context, folderID string) (*model.Folder, error) {
	tx, err := f.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var out model.Folder
	row := tx.QueryRowContext(ctx, `
        SELECT folder_id, name, archived, creation_time FROM folders WHERE folder_id = $1
    `, folderID)
	if err := row.Scan(&out.FolderID, &out.Name, &out.Archived, &out.CreationTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("folder %s: %w", folderID, model.ErrFolderNotFound)
		}
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE folder_id = $1`, folderID); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM folders WHERE folder_id = $1`, folderID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Documents ---

type documents struct{ db *sql.DB }

func (d *documents) Create(ctx context.Context, in *model.Document) (*model.Document, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM folders WHERE folder_id = $1)`, in.FolderID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("folder %s: %w", in.FolderID, model.ErrFolderNotFound)
	}

	id := in.DocumentID
	if id == "" {
		id = ids.New()
	}
	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO documents (document_id, folder_id, name, name_norm, archived, creation_time)
        VALUES ($1, $2, $3, $4, FALSE, $5)
    `, id, in.FolderID, in.Name, norm(in.Name), now); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("document %q: %w", in.Name, model.ErrDuplicateName)
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &model.Document{DocumentID: id, FolderID: in.FolderID, Name: in.Name, Archived: false, CreationTime: now}, nil
}

func (d *documents) GetByID(ctx context.Context, documentID string) (*model.Document, error) {
	var out model.Document
	row := d.db.QueryRowContext(ctx, `
        SELECT document_id, folder_id, name, archived, creation_time FROM documents WHERE document_id = $1
    `, documentID)
	if err := row.Scan(&out.DocumentID, &out.FolderID, &out.Name, &out.Archived, &out.CreationTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document %s: %w", documentID, model.ErrDocumentNotFound)
		}
		return nil, err
	}
	return &out, nil
}

func (d *documents) GetByName(ctx context.Context, name string) (*model.Document, error) {
	var out model.Document
	row := d.db.QueryRowContext(ctx, `
        SELECT document_id, folder_id, name, archived, creation_time FROM documents WHERE name_norm = $1
    `, norm(name))
	if err := row.Scan(&out.DocumentID, &out.FolderID, &out.Name, &out.Archived, &out.CreationTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document %q: %w", name, model.ErrDocumentNotFound)
		}
		return nil, err
	}
	return &out, nil
}

func (d *documents) ListByFolder(ctx context.Context, folderID string) ([]*model.Document, error) {
	var exists bool
	if err := d.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM folders WHERE folder_id = $1)`, folderID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("folder %s: %w", folderID, model.ErrFolderNotFound)
	}

	rows, err := d.db.QueryContext(ctx, `
        SELECT document_id, folder_id, name, archived, creation_time
        FROM documents WHERE folder_id = $1 ORDER BY creation_time, document_id
    `, folderID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	res := make([]*model.Document, 0)
	for rows.Next() {
		var out model.Document
		if err := rows.Scan(&out.DocumentID, &out.FolderID, &out.Name, &out.Archived, &out.CreationTime); err != nil {
			return nil, err
		}
		res = append(res, &out)
	}
	return res, rows.Err()
}

func (d *documents) SetArchived(ctx context.Context, documentID string, archived bool) (*model.Document, error) {
	var out model.Document
	row := d.db.QueryRowContext(ctx, `
        UPDATE documents SET archived = $1 WHERE document_id = $2
        RETURNING document_id, folder_id, name, archived, creation_time
    `, archived, documentID)
	if err := row.Scan(&out.DocumentID, &out.FolderID, &out.Name, &out.Archived, &out.CreationTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document %s: %w", documentID, model.ErrDocumentNotFound)
		}
		return nil, err
	}
	return &out, nil
}

func (d *documents) Delete(ctx context.Context, documentID string) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM documents WHERE document_id = $1`, documentID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("document %s: %w", documentID, model.ErrDocumentNotFound)
	}
	return nil
}
