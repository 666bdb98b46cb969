package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/qingka/internal/backup"
	apperrors "github.com/julianstephens/qingka/internal/errors"
	"github.com/julianstephens/qingka/internal/storage"
)

func TestRequireUser(t *testing.T) {
	ctx := NewContext(nil, "  alice ", t.TempDir())
	if got, err := ctx.RequireUser(); err != nil || got != "alice" {
		t.Errorf("RequireUser() = %q, %v; want alice", got, err)
	}

	ctx = NewContext(nil, " ", t.TempDir())
	_, err := ctx.RequireUser()
	if !errors.Is(err, ErrNoUser) || !errors.Is(err, apperrors.ErrInvalid) {
		t.Errorf("RequireUser() error = %v, want ErrNoUser wrapping ErrInvalid", err)
	}
}

func TestConfigDirFor(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	defaultDir := filepath.Join(home, ".config", "qingka")

	tests := []struct {
		config string
		want   string
	}{
		{"/var/lib/qingka/store.db", "/var/lib/qingka"},
		{"~/.config/qingka/qingka.json", defaultDir},
		{"postgres://user@db:5432/qingka", defaultDir},
		{"mongodb://localhost:27017/qingka", defaultDir},
		{"host=db user=me", defaultDir},
	}
	for _, tt := range tests {
		if got := ConfigDirFor(tt.config); got != tt.want {
			t.Errorf("ConfigDirFor(%q) = %q, want %q", tt.config, got, tt.want)
		}
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		out := &bytes.Buffer{}
		got, err := Confirm(strings.NewReader(tt.input), out, "Continue?")
		if err != nil {
			t.Fatalf("Confirm(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), "Continue? [y/N]") {
			t.Errorf("prompt not written, got %q", out.String())
		}
	}
}

func TestPerformAutomaticBackup(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewJSONStore(filepath.Join(dir, "qingka.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	ctx := NewContext(store, "alice", dir)
	ctx.PerformAutomaticBackup()

	backups, err := backup.NewManager(store.GetConfigPath()).ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() error = %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("got %d backups, want 1", len(backups))
	}
}
