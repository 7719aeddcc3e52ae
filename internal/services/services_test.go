package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shelfd/shelfd/internal/model"
	"github.com/shelfd/shelfd/internal/store"
)

// --- Fakes ---

type fakeStore struct {
	foldersByID   map[string]*model.Folder
	foldersByName map[string]*model.Folder
	docsByID      map[string]*model.Document
	docsByName    map[string]*model.Document

	createdFolder   *model.Folder
	createdDocument *model.Document
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		foldersByID:   map[string]*model.Folder{},
		foldersByName: map[string]*model.Folder{},
		docsByID:      map[string]*model.Document{},
		docsByName:    map[string]*model.Document{},
	}
}

func (f *fakeStore) Folders() store.Folders     { return &fakeFolders{f} }
func (f *fakeStore) Documents() store.Documents { return &fakeDocuments{f} }

type fakeFolders struct{ p *fakeStore }

func (v *fakeFolders) Create(_ context.Context, f *model.Folder) (*model.Folder, error) {
	v.p.createdFolder = f
	out := *f
	out.FolderID = "fake-folder-id"
	return &out, nil
}
func (v *fakeFolders) GetByID(_ context.Context, id string) (*model.Folder, error) {
	if f, ok := v.p.foldersByID[id]; ok {
		return f, nil
	}
	return nil, model.ErrFolderNotFound
}
func (v *fakeFolders) GetByName(_ context.Context, name string) (*model.Folder, error) {
	if f, ok := v.p.foldersByName[name]; ok {
		return f, nil
	}
	return nil, model.ErrFolderNotFound
}
func (v *fakeFolders) List(context.Context) ([]*model.Folder, error) { panic("unused") }
func (v *fakeFolders) SetArchived(context.Context, string, bool) (*model.Folder, error) {
	panic("unused")
}
func (v *fakeFolders) Delete(context.Context, string) (*model.Folder, error) { panic("unused") }

type fakeDocuments struct{ p *fakeStore }

func (d *fakeDocuments) Create(_ context.Context, doc *model.Document) (*model.Document, error) {
	d.p.createdDocument = doc
	out := *doc
	out.DocumentID = "fake-document-id"
	return &out, nil
}
func (d *fakeDocuments) GetByID(_ context.Context, id string) (*model.Document, error) {
	if doc, ok := d.p.docsByID[id]; ok {
		return doc, nil
	}
	return nil, model.ErrDocumentNotFound
}
func (d *fakeDocuments) GetByName(_ context.Context, name string) (*model.Document, error) {
	if doc, ok := d.p.docsByName[name]; ok {
		return doc, nil
	}
	return nil, model.ErrDocumentNotFound
}
func (d *fakeDocuments) ListByFolder(context.Context, string) ([]*model.Document, error) {
	panic("unused")
}
func (d *fakeDocuments) SetArchived(context.Context, string, bool) (*model.Document, error) {
	panic("unused")
}
func (d *fakeDocuments) Delete(context.Context, string) error { panic("unused") }

// --- Tests ---

func TestCreateFolder_RejectsBlankNames(t *testing.T) {
	fs := newFakeStore()
	svc := NewFolderService(fs)

	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := svc.CreateFolder(context.Background(), name); !errors.Is(err, model.ErrInvalid) {
			t.Fatalf("CreateFolder(%q): want ErrInvalid, got %v", name, err)
		}
	}
	if fs.createdFolder != nil {
		t.Fatalf("blank name must not reach the store")
	}
}

func TestCreateFolder_PassesNameThrough(t *testing.T) {
	fs := newFakeStore()
	svc := NewFolderService(fs)

	out, err := svc.CreateFolder(context.Background(), "Invoices")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if out.FolderID != "fake-folder-id" || fs.createdFolder.Name != "Invoices" {
		t.Fatalf("unexpected create: out=%+v stored=%+v", out, fs.createdFolder)
	}
}

func TestCreateDocument_Validation(t *testing.T) {
	fs := newFakeStore()
	svc := NewDocumentService(fs)

	if _, err := svc.CreateDocument(context.Background(), " ", "f1"); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("blank document name: want ErrInvalid, got %v", err)
	}
	if _, err := svc.CreateDocument(context.Background(), "Q1.pdf", ""); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("blank folder id: want ErrInvalid, got %v", err)
	}
	if fs.createdDocument != nil {
		t.Fatalf("invalid input must not reach the store")
	}

	out, err := svc.CreateDocument(context.Background(), "Q1.pdf", "f1")
	if err != nil || out.DocumentID != "fake-document-id" {
		t.Fatalf("CreateDocument: out=%+v err=%v", out, err)
	}
}

func TestFindFolder_FallsBackToName(t *testing.T) {
	fs := newFakeStore()
	byID := &model.Folder{FolderID: "f1", Name: "Invoices"}
	byName := &model.Folder{FolderID: "f2", Name: "Receipts"}
	fs.foldersByID["f1"] = byID
	fs.foldersByName["Receipts"] = byName

	q := NewQueryService(fs)

	if got, err := q.FindFolder(context.Background(), "f1"); err != nil || got != byID {
		t.Fatalf("FindFolder by id: got=%+v err=%v", got, err)
	}
	if got, err := q.FindFolder(context.Background(), "Receipts"); err != nil || got != byName {
		t.Fatalf("FindFolder by name: got=%+v err=%v", got, err)
	}
	if _, err := q.FindFolder(context.Background(), "missing"); !errors.Is(err, model.ErrFolderNotFound) {
		t.Fatalf("FindFolder missing: want ErrFolderNotFound, got %v", err)
	}
}

func TestFindDocument_FallsBackToName(t *testing.T) {
	fs := newFakeStore()
	byName := &model.Document{DocumentID: "d1", Name: "Q1.pdf"}
	fs.docsByName["Q1.pdf"] = byName

	q := NewQueryService(fs)

	if got, err := q.FindDocument(context.Background(), "Q1.pdf"); err != nil || got != byName {
		t.Fatalf("FindDocument by name: got=%+v err=%v", got, err)
	}
	if _, err := q.FindDocument(context.Background(), "missing"); !errors.Is(err, model.ErrDocumentNotFound) {
		t.Fatalf("FindDocument missing: want ErrDocumentNotFound, got %v", err)
	}
}
