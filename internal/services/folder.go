// Package services orchestrates hierarchy operations on top of the store.
// Services hold no state of their own: names are validated here, archive
// flags arrive already coerced to bool, and store errors pass through so
// transports can map them with errors.Is.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shelfd/shelfd/internal/model"
	"github.com/shelfd/shelfd/internal/store"
)

// FolderService handles folder-related operations.
type FolderService struct {
	store store.Store
}

func NewFolderService(s store.Store) *FolderService { return &FolderService{store: s} }

// checkName rejects empty and whitespace-only names before they reach the
// store. The name is stored as given; only the uniqueness comparison is
// normalized, and that happens inside the store.
func checkName(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s must not be empty: %w", field, model.ErrInvalid)
	}
	return nil
}

func (s *FolderService) CreateFolder(ctx context.Context, name string) (*model.Folder, error) {
	if err := checkName("folder name", name); err != nil {
		return nil, err
	}
	return s.store.Folders().Create(ctx, &model.Folder{Name: name})
}

func (s *FolderService) GetFolder(ctx context.Context, folderID string) (*model.Folder, error) {
	return s.store.Folders().GetByID(ctx, folderID)
}

func (s *FolderService) GetFolderByName(ctx context.Context, name string) (*model.Folder, error) {
	return s.store.Folders().GetByName(ctx, name)
}

func (s *FolderService) ListFolders(ctx context.Context) ([]*model.Folder, error) {
	return s.store.Folders().List(ctx)
}

// SetArchiveStatus flips the folder flag; the store cascades the same value
// to every document under the folder atomically.
func (s *FolderService) SetArchiveStatus(ctx context.Context, folderID string, archived bool) (*model.Folder, error) {
	return s.store.Folders().SetArchived(ctx, folderID, archived)
}

// DeleteFolder removes the folder and all of its documents, returning the
// pre-deletion snapshot.
func (s *FolderService) DeleteFolder(ctx context.Context, folderID string) (*model.Folder, error) {
	return s.store.Folders().Delete(ctx, folderID)
}
