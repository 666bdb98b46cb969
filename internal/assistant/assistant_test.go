package assistant

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/qingka/internal/constants"
	apperrors "github.com/julianstephens/qingka/internal/errors"
	"github.com/julianstephens/qingka/internal/models"
	"github.com/julianstephens/qingka/internal/storage"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "qingka.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	repo := NewRepository(store)
	repo.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	return repo
}

func TestAppendHistory(t *testing.T) {
	repo := setupTestRepo(t)

	q, err := repo.Append("u1", models.ChatMessage{Role: models.RoleUser, Content: " 化疗后吃什么好？ "})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if q.ID == "" || !q.Timestamp.Equal(repo.now()) || q.Content != "化疗后吃什么好？" {
		t.Errorf("unexpected stored message %+v", q)
	}

	a, err := repo.Append("u1", models.ChatMessage{
		Role:    models.RoleAssistant,
		Content: "【核心结论】：清淡高蛋白。",
		Sources: []models.Source{{Title: "指南", URI: "https://example.org/guide"}},
	})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if a.ID == q.ID {
		t.Error("message ids must be unique")
	}

	history, err := repo.History("u1")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 || history[0].ID != q.ID || history[1].ID != a.ID {
		t.Fatalf("unexpected history %+v", history)
	}
	if len(history[1].Sources) != 1 || history[1].Sources[0].URI != "https://example.org/guide" {
		t.Errorf("sources not persisted: %+v", history[1].Sources)
	}

	if other, _ := repo.History("u2"); len(other) != 0 {
		t.Error("history must be scoped per user")
	}
}

func TestAppend_Invalid(t *testing.T) {
	repo := setupTestRepo(t)

	tests := []struct {
		name string
		msg  models.ChatMessage
	}{
		{"empty content", models.ChatMessage{Role: models.RoleUser, Content: "  "}},
		{"unknown role", models.ChatMessage{Role: "system", Content: "hi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Append("u1", tt.msg)
			if !errors.Is(err, models.ErrInvalidMessage) || !errors.Is(err, apperrors.ErrInvalid) {
				t.Errorf("expected invalid message error, got %v", err)
			}
		})
	}

	if _, err := repo.Append("", models.ChatMessage{Role: models.RoleUser, Content: "hi"}); !errors.Is(err, ErrEmptyUserID) {
		t.Errorf("expected ErrEmptyUserID, got %v", err)
	}
}

func TestAppend_CorruptHistoryStartsOver(t *testing.T) {
	repo := setupTestRepo(t)
	if err := repo.store.Set(constants.NamespaceAssistant, "u1", `{"content":"not a list"}`); err != nil {
		t.Fatal(err)
	}

	msg, err := repo.Append("u1", models.ChatMessage{Role: models.RoleUser, Content: "还在吗？"})
	if err != nil {
		t.Fatalf("Append over a corrupt value failed: %v", err)
	}
	history, err := repo.History("u1")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 1 || history[0].ID != msg.ID {
		t.Errorf("history = %+v, want only the new message", history)
	}
}

func TestClear(t *testing.T) {
	repo := setupTestRepo(t)

	if _, err := repo.Append("u1", models.ChatMessage{Role: models.RoleUser, Content: "hi"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := repo.Clear("u1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	history, _ := repo.History("u1")
	if len(history) != 0 {
		t.Errorf("expected empty history after Clear, got %d", len(history))
	}
	if err := repo.Clear("u1"); err != nil {
		t.Errorf("clearing an empty history should not fail: %v", err)
	}
}

func TestContext(t *testing.T) {
	profile := models.DefaultProfile()
	history := []models.ChatMessage{
		{Content: "一"}, {Content: "二"}, {Content: "三"}, {Content: "四"},
	}

	got := Context(profile, history, "nutrition")

	for _, want := range []string{
		"[用户信息]",
		"患者昵称: 小青友",
		"癌种: 乳腺癌",
		"当前状态: TREATMENT",
		`近期对话背景: ["二","三","四"]`,
		"当前咨询分类: nutrition",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("context missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, `"一"`) {
		t.Error("only the last three messages belong in the context")
	}

	markup := Context(profile, []models.ChatMessage{{Content: "<b>R&D</b> > 0"}}, "general")
	if !strings.Contains(markup, `近期对话背景: ["<b>R&D</b> > 0"]`) {
		t.Errorf("history should not be HTML-escaped, got:\n%s", markup)
	}
	if strings.Contains(markup, `\u003c`) || strings.Contains(markup, `\u0026`) {
		t.Errorf("context contains escaped markup:\n%s", markup)
	}

	empty := Context(profile, nil, "general")
	if !strings.Contains(empty, "近期对话背景: []") {
		t.Errorf("empty history should render as [], got:\n%s", empty)
	}
}
