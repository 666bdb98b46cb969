package migration

import (
	"database/sql"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/qingka/migrations"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mapFS(files map[string]string) fstest.MapFS {
	m := fstest.MapFS{}
	for name, body := range files {
		m[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return m
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&n); err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	return n == 1
}

func TestCurrentVersion_FreshDatabase(t *testing.T) {
	runner := NewRunner(openTestDB(t), mapFS(nil))

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}
}

func TestApply(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, mapFS(map[string]string{
		"001_kv.sql":    `CREATE TABLE kv (namespace TEXT, key TEXT, value TEXT);`,
		"002_notes.sql": `CREATE TABLE notes (id INTEGER PRIMARY KEY);`,
		"README.md":     "ignored",
	}))

	var lines []string
	count, err := runner.Apply(func(s string) { lines = append(lines, s) })
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 migrations applied, got %d", count)
	}
	if len(lines) == 0 {
		t.Error("expected progress lines from Apply")
	}
	for _, table := range []string{"kv", "notes"} {
		if !tableExists(t, db, table) {
			t.Errorf("table %s was not created", table)
		}
	}
	if err := runner.Check(); err != nil {
		t.Errorf("Check after apply: %v", err)
	}

	var history int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&history); err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if history != 2 {
		t.Errorf("expected 2 history rows, got %d", history)
	}

	count, err = runner.Apply(nil)
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 migrations on second run, got %d", count)
	}
}

func TestApply_Incremental(t *testing.T) {
	db := openTestDB(t)
	files := mapFS(map[string]string{
		"001_kv.sql": `CREATE TABLE kv (namespace TEXT, key TEXT, value TEXT);`,
	})
	runner := NewRunner(db, files)

	if _, err := runner.Apply(nil); err != nil {
		t.Fatalf("Apply (1st) failed: %v", err)
	}

	files["002_notes.sql"] = &fstest.MapFile{Data: []byte(`CREATE TABLE notes (id INTEGER);`)}
	if err := runner.Check(); !errors.Is(err, ErrSchemaBehind) {
		t.Errorf("Check = %v, want ErrSchemaBehind", err)
	}

	st, err := runner.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if st.Current != 1 || st.Latest != 2 || len(st.Pending) != 1 || st.Pending[0].String() != "002_notes" {
		t.Errorf("unexpected status %+v", st)
	}

	count, err := runner.Apply(nil)
	if err != nil {
		t.Fatalf("Apply (2nd) failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 migration applied, got %d", count)
	}
}

func TestApply_RollbackOnError(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, mapFS(map[string]string{
		"001_broken.sql": `
			CREATE TABLE kv (namespace TEXT);
			THIS IS NOT SQL;
		`,
	}))

	if _, err := runner.Apply(nil); err == nil {
		t.Fatal("Apply should fail on invalid SQL")
	}
	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 after failed migration, got %d", version)
	}
	if tableExists(t, db, "kv") {
		t.Error("kv table should not exist after rollback")
	}
}

func TestApply_NewerDatabase(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, mapFS(map[string]string{
		"001_kv.sql": `CREATE TABLE kv (id INTEGER);`,
	}))
	if err := runner.ensureTable(); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO schema_migrations (version, name, applied_at) VALUES (10, 'future', 'x')"); err != nil {
		t.Fatalf("insert future version: %v", err)
	}

	if err := runner.Check(); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Check = %v, want ErrSchemaTooNew", err)
	}
	if _, err := runner.Apply(nil); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Apply = %v, want ErrSchemaTooNew", err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		want    []int
		wantErr string
	}{
		{
			name: "sorted by version",
			files: map[string]string{
				"003_c.sql": "SELECT 1;",
				"001_a.sql": "SELECT 1;",
				"002_b.sql": "SELECT 1;",
			},
			want: []int{1, 2, 3},
		},
		{
			name:    "missing underscore",
			files:   map[string]string{"001init.sql": "SELECT 1;"},
			wantErr: "invalid migration filename",
		},
		{
			name:    "zero version",
			files:   map[string]string{"000_init.sql": "SELECT 1;"},
			wantErr: "version must be at least 1",
		},
		{
			name: "duplicate version",
			files: map[string]string{
				"001_a.sql": "SELECT 1;",
				"001_b.sql": "SELECT 1;",
			},
			wantErr: "duplicate migration version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(mapFS(tt.files))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d migrations, got %d", len(tt.want), len(got))
			}
			for i, m := range got {
				if m.Version != tt.want[i] {
					t.Errorf("migration %d: expected version %d, got %d", i, tt.want[i], m.Version)
				}
			}
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	for _, dir := range []string{"sqlite", "postgres"} {
		sub, err := fs.Sub(migrations.FS, dir)
		if err != nil {
			t.Fatalf("fs.Sub(%s) failed: %v", dir, err)
		}
		if _, err := Parse(sub); err != nil {
			t.Errorf("%s migrations do not parse: %v", dir, err)
		}
	}

	sub, _ := fs.Sub(migrations.FS, "sqlite")
	db := openTestDB(t)
	if _, err := NewRunner(db, sub).Apply(nil); err != nil {
		t.Fatalf("embedded sqlite migrations failed: %v", err)
	}
	if !tableExists(t, db, "kv") {
		t.Error("kv table missing after embedded migrations")
	}
}

func TestRecordSQL(t *testing.T) {
	if got := DialectSQLite.recordSQL(); !strings.Contains(got, "?") {
		t.Errorf("sqlite dialect should use '?' placeholders, got %q", got)
	}
	if got := DialectPostgres.recordSQL(); !strings.Contains(got, "$3") {
		t.Errorf("postgres dialect should use numbered placeholders, got %q", got)
	}
}
