package services

import (
	"context"
	"errors"

	"github.com/shelfd/shelfd/internal/model"
	"github.com/shelfd/shelfd/internal/store"
)

// QueryService is the read-only lookup path. It never mutates state.
type QueryService struct {
	store store.Store
}

func NewQueryService(s store.Store) *QueryService { return &QueryService{store: s} }

// FindFolder resolves a folder by id first, then by name.
func (s *QueryService) FindFolder(ctx context.Context, nameOrID string) (*model.Folder, error) {
	f, err := s.store.Folders().GetByID(ctx, nameOrID)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, model.ErrFolderNotFound) {
		return nil, err
	}
	return s.store.Folders().GetByName(ctx, nameOrID)
}

// FindDocument resolves a document by id first, then by name.
func (s *QueryService) FindDocument(ctx context.Context, nameOrID string) (*model.Document, error) {
	d, err := s.store.Documents().GetByID(ctx, nameOrID)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, model.ErrDocumentNotFound) {
		return nil, err
	}
	return s.store.Documents().GetByName(ctx, nameOrID)
}

// DocumentsOf lists the documents under a folder.
func (s *QueryService) DocumentsOf(ctx context.Context, folderID string) ([]*model.Document, error) {
	return s.store.Documents().ListByFolder(ctx, folderID)
}
