package feed

import (
	"errors"
	"testing"
)

func TestViewer(t *testing.T) {
	repo, _ := setupTestRepo(t)
	if _, err := repo.Seed(); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	v := NewViewer(repo)

	if _, ok := v.Current(); ok {
		t.Error("new viewer should have nothing open")
	}

	if _, err := v.Open("missing"); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("Open(missing) = %v", err)
	}

	if _, err := v.Open("food_1"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	// Current reflects mutations made after opening.
	if _, err := repo.ToggleLike("food_1"); err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	cur, ok := v.Current()
	if !ok || !cur.IsLiked {
		t.Errorf("Current should show fresh state, got %+v ok=%v", cur, ok)
	}

	v.Close()
	if _, ok := v.Current(); ok {
		t.Error("Close should clear the view")
	}
}

func TestViewer_DeleteOpenPost(t *testing.T) {
	repo, _ := setupTestRepo(t)
	if _, err := repo.Seed(); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	v := NewViewer(repo)

	if _, err := v.Open("item_1"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	// Deleting a different post keeps the view.
	if err := v.Delete("food_2"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if cur, ok := v.Current(); !ok || cur.ID != "item_1" {
		t.Errorf("view should still show item_1, got %+v ok=%v", cur, ok)
	}

	if err := v.Delete("item_1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := v.Current(); ok {
		t.Error("view must not reference a deleted post")
	}
}

func TestViewer_DeletedElsewhere(t *testing.T) {
	repo, _ := setupTestRepo(t)
	if _, err := repo.Seed(); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	v := NewViewer(repo)
	if _, err := v.Open("essay_1"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := repo.Delete("essay_1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := v.Current(); ok {
		t.Error("view should close when its post disappears")
	}
}
