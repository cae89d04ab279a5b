package search

import (
	"context"
	"testing"

	"github.com/hyperjump/tansu/internal/models"
)

func newTestIndex(t *testing.T) *ShirtIndex {
	t.Helper()
	idx, err := NewMemShirtIndex()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func seedShirts(t *testing.T, idx *ShirtIndex) {
	t.Helper()
	shirts := []*models.Shirt{
		{ID: 1, Name: "blue large", Color: "blue", Size: "large", Status: "In Drawer"},
		{ID: 2, Name: "red medium", Color: "red", Size: "medium", Status: "Laundry"},
		{ID: 3, Name: "Blue Tee", Color: "navy", Size: "small", Status: "Worn"},
	}
	if err := idx.Rebuild(context.Background(), shirts); err != nil {
		t.Fatal(err)
	}
}

func TestShirtIndex_Search(t *testing.T) {
	idx := newTestIndex(t)
	seedShirts(t, idx)
	ctx := context.Background()

	t.Run("color match", func(t *testing.T) {
		ids, err := idx.Search(ctx, "blue", 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(ids) != 2 {
			t.Fatalf("expected 2 hits for blue, got %v", ids)
		}
	})

	t.Run("name match", func(t *testing.T) {
		ids, err := idx.Search(ctx, "tee", 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(ids) != 1 || ids[0] != 3 {
			t.Errorf("expected shirt 3, got %v", ids)
		}
	})

	t.Run("fuzzy fallback for typo", func(t *testing.T) {
		ids, err := idx.Search(ctx, "lorge", 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(ids) == 0 {
			t.Error("expected fuzzy fallback to find the large shirt")
		}
	})

	t.Run("no match", func(t *testing.T) {
		ids, err := idx.Search(ctx, "zzzzzz", 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(ids) != 0 {
			t.Errorf("expected no hits, got %v", ids)
		}
	})
}

func TestShirtIndex_Delete(t *testing.T) {
	idx := newTestIndex(t)
	seedShirts(t, idx)
	ctx := context.Background()

	if err := idx.Delete(ctx, 2); err != nil {
		t.Fatal(err)
	}
	ids, err := idx.Search(ctx, "red", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no hits after delete, got %v", ids)
	}

	count, err := idx.DocCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("doc count = %d, want 2", count)
	}
}

func TestShirtIndex_SearchDeterministicOrder(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()
	shirts := []*models.Shirt{
		{ID: 5, Name: "green small", Color: "green", Size: "small", Status: "Worn"},
		{ID: 4, Name: "green small", Color: "green", Size: "small", Status: "Worn"},
	}
	if err := idx.Rebuild(ctx, shirts); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		ids, err := idx.Search(ctx, "green small", 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(ids) != 2 || ids[0] != 4 || ids[1] != 5 {
			t.Fatalf("expected stable order [4 5], got %v", ids)
		}
	}
}
