package store

import (
	"context"

	"github.com/shelfd/shelfd/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (memory, sqlite, postgres).
//
// Every write (Create, SetArchived, Delete) is a single atomic unit: a folder
// archive change and the matching update of its documents are never observable
// separately, and a document never outlives its folder.
type Store interface {
	Folders() Folders
	Documents() Documents
}

type Folders interface {
	// Create inserts a new folder. Returns model.ErrDuplicateName when the
	// name is already taken, compared case-insensitively.
	Create(ctx context.Context, f *model.Folder) (*model.Folder, error)
	GetByID(ctx context.Context, folderID string) (*model.Folder, error)
	// GetByName matches case-insensitively against the stored name.
	GetByName(ctx context.Context, name string) (*model.Folder, error)
	// List returns folders in insertion order.
	List(ctx context.Context) ([]*model.Folder, error)
	// SetArchived updates the folder flag and, in the same atomic unit,
	// every document owned by the folder. Returns the updated folder.
	SetArchived(ctx context.Context, folderID string, archived bool) (*model.Folder, error)
	// Delete removes the folder and every document under it, returning the
	// pre-deletion folder snapshot.
	Delete(ctx context.Context, folderID string) (*model.Folder, error)
}

type Documents interface {
	// Create inserts a new document. Returns model.ErrFolderNotFound when the
	// owning folder is absent and model.ErrDuplicateName when the name is
	// taken. The new document is always active, even under an archived folder.
	Create(ctx context.Context, d *model.Document) (*model.Document, error)
	GetByID(ctx context.Context, documentID string) (*model.Document, error)
	GetByName(ctx context.Context, name string) (*model.Document, error)
	// ListByFolder returns the folder's documents in insertion order.
	// Returns model.ErrFolderNotFound when the folder is absent.
	ListByFolder(ctx context.Context, folderID string) ([]*model.Document, error)
	// SetArchived updates only this document; its state may diverge from the
	// folder's until the next folder-level cascade.
	SetArchived(ctx context.Context, documentID string, archived bool) (*model.Document, error)
	Delete(ctx context.Context, documentID string) error
}
