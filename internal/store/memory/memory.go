// Package memory provides the authoritative in-memory store driver.
//
// All state lives in plain maps behind one RWMutex. Every write operation is
// a single exclusive critical section covering the primary maps and all
// secondary indexes, so readers never observe a folder whose archive flag has
// changed ahead of its documents, or a document referencing a deleted folder.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shelfd/shelfd/internal/ids"
	"github.com/shelfd/shelfd/internal/model"
	"github.com/shelfd/shelfd/internal/store"
)

type memStore struct {
	mu sync.RWMutex

	folders   map[string]*model.Folder   // folder id -> folder
	documents map[string]*model.Document // document id -> document

	folderNames   map[string]string   // normalized name -> folder id
	documentNames map[string]string   // normalized name -> document id
	folderDocs    map[string][]string // folder id -> document ids, insertion order
	folderOrder   []string            // folder ids, insertion order
}

// New returns an empty in-memory store.
func New() store.Store {
	return &memStore{
		folders:       make(map[string]*model.Folder),
		documents:     make(map[string]*model.Document),
		folderNames:   make(map[string]string),
		documentNames: make(map[string]string),
		folderDocs:    make(map[string][]string),
	}
}

func (s *memStore) Folders() store.Folders     { return (*folders)(s) }
func (s *memStore) Documents() store.Documents { return (*documents)(s) }

// HealthPing implements health.HealthPinger; the driver has no external
// dependency to probe.
func (s *memStore) HealthPing(ctx context.Context) error { return ctx.Err() }

// norm lowercases a name for uniqueness comparison and indexing. The
// original casing is kept on the record for display.
func norm(name string) string { return strings.ToLower(name) }

func cloneFolder(f *model.Folder) *model.Folder {
	out := *f
	return &out
}

func cloneDocument(d *model.Document) *model.Document {
	out := *d
	return &out
}

// --- Folders ---

type folders memStore

func (s *folders) Create(ctx context.Context, f *model.Folder) (*model.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := norm(f.Name)
	if _, taken := s.folderNames[key]; taken {
		return nil, fmt.Errorf("folder %q: %w", f.Name, model.ErrDuplicateName)
	}

	rec := &model.Folder{
		FolderID:     f.FolderID,
		Name:         f.Name,
		Archived:     false,
		CreationTime: time.Now().UTC(),
	}
	if rec.FolderID == "" {
		rec.FolderID = ids.New()
	}

	s.folders[rec.FolderID] = rec
	s.folderNames[key] = rec.FolderID
	s.folderDocs[rec.FolderID] = nil
	s.folderOrder = append(s.folderOrder, rec.FolderID)
	return cloneFolder(rec), nil
}

func (s *folders) GetByID(ctx context.Context, folderID string) (*model.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.folders[folderID]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", folderID, model.ErrFolderNotFound)
	}
	return cloneFolder(f), nil
}

func (s *folders) GetByName(ctx context.Context, name string) (*model.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.folderNames[norm(name)]
	if !ok {
		return nil, fmt.Errorf("folder %q: %w", name, model.ErrFolderNotFound)
	}
	return cloneFolder(s.folders[id]), nil
}

func (s *folders) List(ctx context.Context) ([]*model.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Folder, 0, len(s.folderOrder))
	for _, id := range s.folderOrder {
		out = append(out, cloneFolder(s.folders[id]))
	}
	return out, nil
}

func (s *folders) SetArchived(ctx context.Context, folderID string, archived bool) (*model.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.folders[folderID]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", folderID, model.ErrFolderNotFound)
	}

	// Folder flag and every owned document change inside the same critical
	// section so no reader sees a partially applied cascade.
	f.Archived = archived
	for _, docID := range s.folderDocs[folderID] {
		s.documents[docID].Archived = archived
	}
	return cloneFolder(f), nil
}

func (s *folders) Delete(ctx context.Context, folderID string) (*model.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.folders[folderID]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", folderID, model.ErrFolderNotFound)
	}

	// Documents go first so a dangling reference can never be observed.
	for _, docID := range s.folderDocs[folderID] {
		doc := s.documents[docID]
		delete(s.documentNames, norm(doc.Name))
		delete(s.documents, docID)
	}
	delete(s.folderDocs, folderID)
	delete(s.folderNames, norm(f.Name))
	delete(s.folders, folderID)
	for i, id := range s.folderOrder {
		if id == folderID {
			s.folderOrder = append(s.folderOrder[:i], s.folderOrder[i+1:]...)
			break
		}
	}
	return cloneFolder(f), nil
}

// --- Documents ---

type documents memStore

func (s *documents) Create(ctx context.Context, d *model.Document) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.folders[d.FolderID]; !ok {
		return nil, fmt.Errorf("folder %s: %w", d.FolderID, model.ErrFolderNotFound)
	}
	key := norm(d.Name)
	if _, taken := s.documentNames[key]; taken {
		return nil, fmt.Errorf("document %q: %w", d.Name, model.ErrDuplicateName)
	}

	// New documents start active even when the owning folder is archived;
	// the next folder-level cascade will pick them up.
	rec := &model.Document{
		DocumentID:   d.DocumentID,
		FolderID:     d.FolderID,
		Name:         d.Name,
		Archived:     false,
		CreationTime: time.Now().UTC(),
	}
	if rec.DocumentID == "" {
		rec.DocumentID = ids.New()
	}

	s.documents[rec.DocumentID] = rec
	s.documentNames[key] = rec.DocumentID
	s.folderDocs[rec.FolderID] = append(s.folderDocs[rec.FolderID], rec.DocumentID)
	return cloneDocument(rec), nil
}

func (s *documents) GetByID(ctx context.Context, documentID string) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.documents[documentID]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", documentID, model.ErrDocumentNotFound)
	}
	return cloneDocument(d), nil
}

func (s *documents) GetByName(ctx context.Context, name string) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.documentNames[norm(name)]
	if !ok {
		return nil, fmt.Errorf("document %q: %w", name, model.ErrDocumentNotFound)
	}
	return cloneDocument(s.documents[id]), nil
}

func (s *documents) ListByFolder(ctx context.Context, folderID string) ([]*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.folders[folderID]; !ok {
		return nil, fmt.Errorf("folder %s: %w", folderID, model.ErrFolderNotFound)
	}
	docIDs := s.folderDocs[folderID]
	out := make([]*model.Document, 0, len(docIDs))
	for _, id := range docIDs {
		out = append(out, cloneDocument(s.documents[id]))
	}
	return out, nil
}

func (s *documents) SetArchived(ctx context.Context, documentID string, archived bool) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.documents[documentID]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", documentID, model.ErrDocumentNotFound)
	}
	d.Archived = archived
	return cloneDocument(d), nil
}

func (s *documents) Delete(ctx context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.documents[documentID]
	if !ok {
		return fmt.Errorf("document %s: %w", documentID, model.ErrDocumentNotFound)
	}
	delete(s.documentNames, norm(d.Name))
	delete(s.documents, documentID)
	docIDs := s.folderDocs[d.FolderID]
	for i, id := range docIDs {
		if id == documentID {
			s.folderDocs[d.FolderID] = append(docIDs[:i], docIDs[i+1:]...)
			break
		}
	}
	return nil
}
