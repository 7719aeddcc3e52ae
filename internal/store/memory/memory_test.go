package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shelfd/shelfd/internal/model"
	"github.com/shelfd/shelfd/internal/store"
	"github.com/shelfd/shelfd/internal/store/storetest"
)

func TestMemoryStore_Compliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}

// Readers must never observe a folder listing with mixed archive flags while
// cascades flip the folder concurrently.
func TestMemoryStore_CascadeAtomicity(t *testing.T) {
	s := New()
	ctx := context.Background()

	f, err := s.Folders().Create(ctx, &model.Folder{Name: "ledger"})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}
	for _, n := range []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"} {
		if _, err := s.Documents().Create(ctx, &model.Document{Name: n, FolderID: f.FolderID}); err != nil {
			t.Fatalf("create document %s: %v", n, err)
		}
	}

	const flips = 200
	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(stop)
		for i := 0; i < flips; i++ {
			if _, err := s.Folders().SetArchived(ctx, f.FolderID, i%2 == 0); err != nil {
				t.Errorf("cascade flip %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				docs, err := s.Documents().ListByFolder(ctx, f.FolderID)
				if err != nil {
					t.Errorf("list: %v", err)
					return
				}
				for _, d := range docs[1:] {
					if d.Archived != docs[0].Archived {
						t.Errorf("observed partially cascaded state: %v vs %v", d.Archived, docs[0].Archived)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}

// Concurrent folder deletes and document creates must keep referential
// integrity: a create either lands before the delete (and the document dies
// with the folder) or fails with folder-not-found. Nothing may survive
// pointing at a deleted folder.
func TestMemoryStore_DeleteCascadeIntegrity(t *testing.T) {
	s := New()
	ctx := context.Background()

	f, _ := s.Folders().Create(ctx, &model.Folder{Name: "to-delete"})
	d, _ := s.Documents().Create(ctx, &model.Document{Name: "doomed.pdf", FolderID: f.FolderID})

	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				_, _ = s.Documents().Create(ctx, &model.Document{
					Name:     fmt.Sprintf("late-%d-%d.pdf", r, i),
					FolderID: f.FolderID,
				})
			}
		}(r)
	}
	if _, err := s.Folders().Delete(ctx, f.FolderID); err != nil {
		t.Fatalf("delete folder: %v", err)
	}
	wg.Wait()

	if _, err := s.Documents().GetByID(ctx, d.DocumentID); err == nil {
		t.Fatalf("document outlived its folder")
	}
	for r := 0; r < 4; r++ {
		for i := 0; i < 200; i++ {
			if _, err := s.Documents().GetByName(ctx, fmt.Sprintf("late-%d-%d.pdf", r, i)); err == nil {
				t.Fatalf("document late-%d-%d.pdf references a deleted folder", r, i)
			}
		}
	}
}
