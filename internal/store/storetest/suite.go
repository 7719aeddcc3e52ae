// Package storetest holds a compliance suite run against every store driver.
package storetest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shelfd/shelfd/internal/model"
	"github.com/shelfd/shelfd/internal/store"
)

// Run exercises the store contract against a driver. Implementations should
// provide a clean, isolated store from makeStore. Names are suffixed with a
// run-unique token so the suite can also run against shared databases.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()
	tok := uuid.New().String()[:8]
	name := func(base string) string { return base + "-" + tok }

	// Folder create and lookups
	f1, err := s.Folders().Create(ctx, &model.Folder{Name: name("Invoices")})
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if f1.FolderID == "" || f1.Archived {
		t.Fatalf("CreateFolder: bad record %+v", f1)
	}
	if got, err := s.Folders().GetByID(ctx, f1.FolderID); err != nil || got.Name != name("Invoices") {
		t.Fatalf("GetFolderByID: got=%+v err=%v", got, err)
	}
	if got, err := s.Folders().GetByName(ctx, strings.ToUpper(name("Invoices"))); err != nil || got.FolderID != f1.FolderID {
		t.Fatalf("GetFolderByName case-insensitive: got=%+v err=%v", got, err)
	}
	if got, _ := s.Folders().GetByID(ctx, f1.FolderID); got.Name != name("Invoices") {
		t.Fatalf("original casing not preserved: %q", got.Name)
	}

	// Case-insensitive folder uniqueness
	if _, err := s.Folders().Create(ctx, &model.Folder{Name: strings.ToLower(name("Invoices"))}); !errors.Is(err, model.ErrDuplicateName) {
		t.Fatalf("duplicate folder: want ErrDuplicateName, got %v", err)
	}

	// Insertion-order listing
	time.Sleep(5 * time.Millisecond) // keep creation times strictly ordered
	f2, err := s.Folders().Create(ctx, &model.Folder{Name: name("Receipts")})
	if err != nil {
		t.Fatalf("CreateFolder f2: %v", err)
	}
	lst, err := s.Folders().List(ctx)
	if err != nil {
		t.Fatalf("ListFolders: %v", err)
	}
	i1, i2 := -1, -1
	for i, f := range lst {
		switch f.FolderID {
		case f1.FolderID:
			i1 = i
		case f2.FolderID:
			i2 = i
		}
	}
	if i1 < 0 || i2 < 0 || i1 > i2 {
		t.Fatalf("ListFolders order: i1=%d i2=%d", i1, i2)
	}

	// Document creation requires an existing folder
	if _, err := s.Documents().Create(ctx, &model.Document{Name: name("ghost"), FolderID: "nonexistent"}); !errors.Is(err, model.ErrFolderNotFound) {
		t.Fatalf("create document under missing folder: want ErrFolderNotFound, got %v", err)
	}
	if _, err := s.Documents().GetByName(ctx, name("ghost")); !errors.Is(err, model.ErrDocumentNotFound) {
		t.Fatalf("failed create must not store the document: %v", err)
	}

	d1, err := s.Documents().Create(ctx, &model.Document{Name: name("Q1.pdf"), FolderID: f1.FolderID})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if d1.Archived || d1.FolderID != f1.FolderID {
		t.Fatalf("CreateDocument: bad record %+v", d1)
	}

	// Document uniqueness is global, not per-folder
	if _, err := s.Documents().Create(ctx, &model.Document{Name: strings.ToUpper(name("Q1.pdf")), FolderID: f2.FolderID}); !errors.Is(err, model.ErrDuplicateName) {
		t.Fatalf("duplicate document in another folder: want ErrDuplicateName, got %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	d2, err := s.Documents().Create(ctx, &model.Document{Name: name("Q2.pdf"), FolderID: f1.FolderID})
	if err != nil {
		t.Fatalf("CreateDocument d2: %v", err)
	}

	if docs, err := s.Documents().ListByFolder(ctx, f1.FolderID); err != nil || len(docs) != 2 || docs[0].DocumentID != d1.DocumentID {
		t.Fatalf("ListByFolder: docs=%v err=%v", docs, err)
	}
	if _, err := s.Documents().ListByFolder(ctx, "nonexistent"); !errors.Is(err, model.ErrFolderNotFound) {
		t.Fatalf("ListByFolder missing folder: want ErrFolderNotFound, got %v", err)
	}

	// Archive cascade
	f1a, err := s.Folders().SetArchived(ctx, f1.FolderID, true)
	if err != nil || !f1a.Archived {
		t.Fatalf("SetArchived(true): f=%+v err=%v", f1a, err)
	}
	docs, err := s.Documents().ListByFolder(ctx, f1.FolderID)
	if err != nil {
		t.Fatalf("ListByFolder after cascade: %v", err)
	}
	for _, d := range docs {
		if !d.Archived {
			t.Fatalf("cascade missed document %s", d.DocumentID)
		}
	}

	// Idempotent toggle
	if _, err := s.Folders().SetArchived(ctx, f1.FolderID, true); err != nil {
		t.Fatalf("SetArchived(true) twice: %v", err)
	}

	// New documents stay active under an archived folder
	d3, err := s.Documents().Create(ctx, &model.Document{Name: name("Q3.pdf"), FolderID: f1.FolderID})
	if err != nil {
		t.Fatalf("CreateDocument under archived folder: %v", err)
	}
	if d3.Archived {
		t.Fatalf("document created under archived folder must start active")
	}

	// Document-level archive diverges until the next cascade
	if d, err := s.Documents().SetArchived(ctx, d2.DocumentID, false); err != nil || d.Archived {
		t.Fatalf("SetDocumentArchived(false): d=%+v err=%v", d, err)
	}
	if f, _ := s.Folders().GetByID(ctx, f1.FolderID); !f.Archived {
		t.Fatalf("document-level update must not touch the folder")
	}

	// Unarchive cascade realigns everything
	if _, err := s.Folders().SetArchived(ctx, f1.FolderID, false); err != nil {
		t.Fatalf("SetArchived(false): %v", err)
	}
	docs, _ = s.Documents().ListByFolder(ctx, f1.FolderID)
	for _, d := range docs {
		if d.Archived {
			t.Fatalf("unarchive cascade missed document %s", d.DocumentID)
		}
	}

	// Archive targets must exist
	if _, err := s.Folders().SetArchived(ctx, "nonexistent", true); !errors.Is(err, model.ErrFolderNotFound) {
		t.Fatalf("archive missing folder: want ErrFolderNotFound, got %v", err)
	}
	if _, err := s.Documents().SetArchived(ctx, "nonexistent", true); !errors.Is(err, model.ErrDocumentNotFound) {
		t.Fatalf("archive missing document: want ErrDocumentNotFound, got %v", err)
	}

	// Document delete frees the name
	if err := s.Documents().Delete(ctx, d3.DocumentID); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	if _, err := s.Documents().GetByID(ctx, d3.DocumentID); !errors.Is(err, model.ErrDocumentNotFound) {
		t.Fatalf("deleted document still found: %v", err)
	}
	if _, err := s.Documents().Create(ctx, &model.Document{Name: name("Q3.pdf"), FolderID: f2.FolderID}); err != nil {
		t.Fatalf("recreate document after delete: %v", err)
	}

	// Folder delete cascades and returns the snapshot
	snap, err := s.Folders().Delete(ctx, f1.FolderID)
	if err != nil || snap.FolderID != f1.FolderID || snap.Name != name("Invoices") {
		t.Fatalf("DeleteFolder: snap=%+v err=%v", snap, err)
	}
	if _, err := s.Folders().GetByID(ctx, f1.FolderID); !errors.Is(err, model.ErrFolderNotFound) {
		t.Fatalf("deleted folder still found: %v", err)
	}
	for _, id := range []string{d1.DocumentID, d2.DocumentID} {
		if _, err := s.Documents().GetByID(ctx, id); !errors.Is(err, model.ErrDocumentNotFound) {
			t.Fatalf("document %s outlived its folder: %v", id, err)
		}
	}
	if _, err := s.Folders().Delete(ctx, f1.FolderID); !errors.Is(err, model.ErrFolderNotFound) {
		t.Fatalf("double delete: want ErrFolderNotFound, got %v", err)
	}

	// Folder name is free again after delete
	if _, err := s.Folders().Create(ctx, &model.Folder{Name: name("Invoices")}); err != nil {
		t.Fatalf("recreate folder after delete: %v", err)
	}
}
