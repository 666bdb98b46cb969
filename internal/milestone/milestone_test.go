package milestone

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/qingka/internal/constants"
	apperrors "github.com/julianstephens/qingka/internal/errors"
	"github.com/julianstephens/qingka/internal/models"
	"github.com/julianstephens/qingka/internal/storage"
	"github.com/julianstephens/qingka/internal/storage/sqlite"
)

func setupTestRepo(t *testing.T) (*Repository, storage.Provider) {
	t.Helper()
	store := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return NewRepository(store), store
}

func TestCreateList(t *testing.T) {
	repo, _ := setupTestRepo(t)

	empty, err := repo.List("u1")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty list, got %v, %v", empty, err)
	}

	titles := []string{"确诊日", "最后一次化疗", "复查"}
	for _, title := range titles {
		if _, err := repo.Create("u1", models.DaysMatterEvent{
			Title:     title,
			Type:      models.CountUp,
			StartDate: "2024-11-20",
		}); err != nil {
			t.Fatalf("Create(%s) failed: %v", title, err)
		}
	}

	events, err := repo.List("u1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(events) != len(titles) {
		t.Fatalf("expected %d events, got %d", len(titles), len(events))
	}
	seen := map[string]bool{}
	for i, e := range events {
		if e.Title != titles[i] {
			t.Errorf("events[%d] = %q, want %q (insertion order)", i, e.Title, titles[i])
		}
		if e.ID == "" || seen[e.ID] {
			t.Errorf("events[%d] has missing or duplicate id %q", i, e.ID)
		}
		seen[e.ID] = true
	}

	other, _ := repo.List("u2")
	if len(other) != 0 {
		t.Error("events must be scoped per user")
	}
}

func TestCreate_Invalid(t *testing.T) {
	repo, store := setupTestRepo(t)

	tests := []struct {
		name  string
		event models.DaysMatterEvent
	}{
		{"empty title", models.DaysMatterEvent{Title: " ", Type: models.CountUp, StartDate: "2024-01-01"}},
		{"unknown type", models.DaysMatterEvent{Title: "a", Type: "SIDEWAYS", StartDate: "2024-01-01"}},
		{"bad date", models.DaysMatterEvent{Title: "a", Type: models.CountDown, StartDate: "01/01/2024"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Create("u1", tt.event)
			if !errors.Is(err, models.ErrInvalidEvent) || !errors.Is(err, apperrors.ErrInvalid) {
				t.Fatalf("expected invalid event error, got %v", err)
			}
			if _, ok, _ := store.Get(constants.NamespaceMilestones, "u1"); ok {
				t.Error("invalid event must not be written")
			}
		})
	}

	if _, err := repo.Create("", models.DaysMatterEvent{Title: "a", Type: models.CountUp, StartDate: "2024-01-01"}); !errors.Is(err, ErrEmptyUserID) {
		t.Errorf("expected ErrEmptyUserID, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, _ := setupTestRepo(t)

	a, _ := repo.Create("u1", models.DaysMatterEvent{Title: "a", Type: models.CountUp, StartDate: "2024-01-01"})
	b, _ := repo.Create("u1", models.DaysMatterEvent{Title: "b", Type: models.CountDown, StartDate: "2030-01-01"})

	if err := repo.Delete("u1", a.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	events, _ := repo.List("u1")
	if len(events) != 1 || events[0].ID != b.ID {
		t.Errorf("unexpected events after delete: %+v", events)
	}

	err := repo.Delete("u1", a.ID)
	if !errors.Is(err, ErrEventNotFound) || !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestList_CorruptIsEmpty(t *testing.T) {
	repo, store := setupTestRepo(t)
	if err := store.Set(constants.NamespaceMilestones, "u1", `{"title":"not a list"}`); err != nil {
		t.Fatal(err)
	}
	events, err := repo.List("u1")
	if err != nil || len(events) != 0 {
		t.Errorf("corrupt value should list empty, got %v, %v", events, err)
	}
}
