package system

import (
	"errors"
	"testing"

	apperrors "github.com/julianstephens/qingka/internal/errors"
)

func TestMigrateCmd(t *testing.T) {
	t.Run("up to date sqlite", func(t *testing.T) {
		ctx, _, out := setupTestContext(t)
		if err := (&InitCmd{}).Run(ctx); err != nil {
			t.Fatalf("init failed: %v", err)
		}
		out.Reset()
		if err := (&MigrateCmd{}).Run(ctx); err != nil {
			t.Fatalf("migrate failed: %v", err)
		}
		if !bytesContains(out.Bytes(), "Database is up to date") {
			t.Errorf("unexpected output:\n%s", out.String())
		}
	})

	t.Run("uninitialized sqlite", func(t *testing.T) {
		ctx, _, _ := setupTestContext(t)
		err := (&MigrateCmd{}).Run(ctx)
		if !errors.Is(err, apperrors.ErrNotInitialized) {
			t.Errorf("error = %v, want ErrNotInitialized", err)
		}
	})

	t.Run("json store has no schema", func(t *testing.T) {
		ctx, _, out := setupJSONContext(t)
		if err := (&MigrateCmd{}).Run(ctx); err != nil {
			t.Fatalf("migrate failed: %v", err)
		}
		if !bytesContains(out.Bytes(), "nothing to migrate") {
			t.Errorf("unexpected output:\n%s", out.String())
		}
	})
}
