package system

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/julianstephens/qingka/internal/cli"
	"github.com/julianstephens/qingka/internal/storage"
	"github.com/julianstephens/qingka/internal/storage/sqlite"
)

// setupTestContext returns a context over an uninitialized SQLite store.
func setupTestContext(t *testing.T) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	store := sqlite.New(dbPath)
	t.Cleanup(func() { _ = store.Close() })

	ctx := cli.NewContext(store, "alice", dir)
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, dbPath, out
}

func setupJSONContext(t *testing.T) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "qingka.json")
	store := storage.NewJSONStore(path)
	t.Cleanup(func() { _ = store.Close() })

	ctx := cli.NewContext(store, "alice", dir)
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, path, out
}

func bytesContains(b []byte, s string) bool {
	return bytes.Contains(b, []byte(s))
}
