// Package sqlite implements the store contract on an embedded SQLite
// database. Cascading writes run inside one transaction so the atomicity
// guarantees match the in-memory driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shelfd/shelfd/internal/ids"
	"github.com/shelfd/shelfd/internal/model"
	"github.com/shelfd/shelfd/internal/store"
)

// NewWithDB constructs a SQLite-backed store over an opened database.
func NewWithDB(db *sql.DB) store.Store { return &sqlStore{db: db} }

type sqlStore struct{ db *sql.DB }

func (s *sqlStore) Folders() store.Folders     { return &folders{db: s.db} }
func (s *sqlStore) Documents() store.Documents { return &documents{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *sqlStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func norm(name string) string { return strings.ToLower(name) }

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
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
        VALUES (?, ?, ?, 0, ?)
    `, id, in.Name, norm(in.Name), formatTime(now))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("folder %q: %w", in.Name, model.ErrDuplicateName)
		}
		return nil, err
	}
	return &model.Folder{FolderID: id, Name: in.Name, Archived: false, CreationTime: now}, nil
}

func scanFolder(row *sql.Row) (*model.Folder, error) {
	var out model.Folder
	var archived int
	var created string
	if err := row.Scan(&out.FolderID, &out.Name, &archived, &created); err != nil {
		return nil, err
	}
	out.Archived = archived != 0
	out.CreationTime = parseTime(created)
	return &out, nil
}

func (f *folders) GetByID(ctx context.Context, folderID string) (*model.Folder, error) {
	out, err := scanFolder(f.db.QueryRowContext(ctx, `
        SELECT folder_id, name, archived, creation_time FROM folders WHERE folder_id = ?
    `, folderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("folder %s: %w", folderID, model.ErrFolderNotFound)
	}
	return out, err
}

func (f *folders) GetByName(ctx context.Context, name string) (*model.Folder, error) {
	out, err := scanFolder(f.db.QueryRowContext(ctx, `
        SELECT folder_id, name, archived, creation_time FROM folders WHERE name_norm = ?
    `, norm(name)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("folder %q: %w", name, model.ErrFolderNotFound)
	}
	return out, err
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
		var archived int
		var created string
		if err := rows.Scan(&out.FolderID, &out.Name, &archived, &created); err != nil {
			return nil, err
		}
		out.Archived = archived != 0
		out.CreationTime = parseTime(created)
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

	flag := 0
	if archived {
		flag = 1
	}
	res, err := tx.ExecContext(ctx, `UPDATE folders SET archived = ? WHERE folder_id = ?`, flag, folderID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, fmt.Errorf("folder %s: %w", folderID, model.ErrFolderNotFound)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE documents SET archived = ? WHERE folder_id = ?`, flag, folderID); err != nil {
		return nil, err
	}

	var out model.Folder
	var created string
	row := tx.QueryRowContext(ctx, `SELECT folder_id, name, creation_time FROM folders WHERE folder_id = ?`, folderID)
	if err := row.Scan(&out.FolderID, &out.Name, &created); err != nil {
		return nil, err
	}
	out.Archived = archived
	out.CreationTime = parseTime(created)

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
	var archived int
	var created string
	row := tx.QueryRowContext(ctx, `
        SELECT folder_id, name, archived, creation_time FROM folders WHERE folder_id = ?
    `, folderID)
	if err := row.Scan(&out.FolderID, &out.Name, &archived, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("folder %s: %w", folderID, model.ErrFolderNotFound)
		}
		return nil, err
	}
	out.Archived = archived != 0
	out.CreationTime = parseTime(created)

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE folder_id = ?`, folderID); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM folders WHERE folder_id = ?`, folderID); err != nil {
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

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM folders WHERE folder_id = ?`, in.FolderID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("folder %s: %w", in.FolderID, model.ErrFolderNotFound)
	}

	id := in.DocumentID
	if id == "" {
		id = ids.New()
	}
	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO documents (document_id, folder_id, name, name_norm, archived, creation_time)
        VALUES (?, ?, ?, ?, 0, ?)
    `, id, in.FolderID, in.Name, norm(in.Name), formatTime(now)); err != nil {
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

func scanDocumentRow(row *sql.Row) (*model.Document, error) {
	var out model.Document
	var archived int
	var created string
	if err := row.Scan(&out.DocumentID, &out.FolderID, &out.Name, &archived, &created); err != nil {
		return nil, err
	}
	out.Archived = archived != 0
	out.CreationTime = parseTime(created)
	return &out, nil
}

func (d *documents) GetByID(ctx context.Context, documentID string) (*model.Document, error) {
	out, err := scanDocumentRow(d.db.QueryRowContext(ctx, `
        SELECT document_id, folder_id, name, archived, creation_time FROM documents WHERE document_id = ?
    `, documentID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", documentID, model.ErrDocumentNotFound)
	}
	return out, err
}

func (d *documents) GetByName(ctx context.Context, name string) (*model.Document, error) {
	out, err := scanDocumentRow(d.db.QueryRowContext(ctx, `
        SELECT document_id, folder_id, name, archived, creation_time FROM documents WHERE name_norm = ?
    `, norm(name)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %q: %w", name, model.ErrDocumentNotFound)
	}
	return out, err
}

func (d *documents) ListByFolder(ctx context.Context, folderID string) ([]*model.Document, error) {
	var exists int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM folders WHERE folder_id = ?`, folderID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("folder %s: %w", folderID, model.ErrFolderNotFound)
	}

	rows, err := d.db.QueryContext(ctx, `
        SELECT document_id, folder_id, name, archived, creation_time
        FROM documents WHERE folder_id = ? ORDER BY creation_time, document_id
    `, folderID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	res := make([]*model.Document, 0)
	for rows.Next() {
		var out model.Document
		var archived int
		var created string
		if err := rows.Scan(&out.DocumentID, &out.FolderID, &out.Name, &archived, &created); err != nil {
			return nil, err
		}
		out.Archived = archived != 0
		out.CreationTime = parseTime(created)
		res = append(res, &out)
	}
	return res, rows.Err()
}

func (d *documents) SetArchived(ctx context.Context, documentID string, archived bool) (*model.Document, error) {
	flag := 0
	if archived {
		flag = 1
	}
	res, err := d.db.ExecContext(ctx, `UPDATE documents SET archived = ? WHERE document_id = ?`, flag, documentID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, fmt.Errorf("document %s: %w", documentID, model.ErrDocumentNotFound)
	}
	return d.GetByID(ctx, documentID)
}

func (d *documents) Delete(ctx context.Context, documentID string) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM documents WHERE document_id = ?`, documentID)
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
