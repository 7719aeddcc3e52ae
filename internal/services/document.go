package services

import (
	"context"
	"fmt"

	"github.com/shelfd/shelfd/internal/model"
	"github.com/shelfd/shelfd/internal/store"
)

// DocumentService handles document-related operations.
type DocumentService struct {
	store store.Store
}

func NewDocumentService(s store.Store) *DocumentService { return &DocumentService{store: s} }

func (s *DocumentService) CreateDocument(ctx context.Context, name, folderID string) (*model.Document, error) {
	if err := checkName("document name", name); err != nil {
		return nil, err
	}
	if folderID == "" {
		return nil, fmt.Errorf("folderId must not be empty: %w", model.ErrInvalid)
	}
	return s.store.Documents().Create(ctx, &model.Document{Name: name, FolderID: folderID})
}

func (s *DocumentService) GetDocument(ctx context.Context, documentID string) (*model.Document, error) {
	return s.store.Documents().GetByID(ctx, documentID)
}

func (s *DocumentService) GetDocumentByName(ctx context.Context, name string) (*model.Document, error) {
	return s.store.Documents().GetByName(ctx, name)
}

func (s *DocumentService) ListDocuments(ctx context.Context, folderID string) ([]*model.Document, error) {
	return s.store.Documents().ListByFolder(ctx, folderID)
}

// SetArchiveStatus updates a single document, independent of its folder; the
// two may diverge until the next folder-level cascade.
func (s *DocumentService) SetArchiveStatus(ctx context.Context, documentID string, archived bool) (*model.Document, error) {
	return s.store.Documents().SetArchived(ctx, documentID, archived)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, documentID string) error {
	return s.store.Documents().Delete(ctx, documentID)
}
