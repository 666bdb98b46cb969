package profiles

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/qingka/internal/cli"
	"github.com/julianstephens/qingka/internal/constants"
	apperrors "github.com/julianstephens/qingka/internal/errors"
	"github.com/julianstephens/qingka/internal/models"
	"github.com/julianstephens/qingka/internal/storage/sqlite"
)

func setupTestContext(t *testing.T, userID string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	store := sqlite.New(filepath.Join(dir, "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := cli.NewContext(store, userID, dir)
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func ptr[T any](v T) *T { return &v }

func TestProfileShowCmd_Default(t *testing.T) {
	ctx, out := setupTestContext(t, "alice")

	if err := (&ProfileShowCmd{}).Run(ctx); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out.String(), "小青友") {
		t.Errorf("output should show the default name, got:\n%s", out.String())
	}
}

func TestProfileCmds_RequireUser(t *testing.T) {
	ctx, _ := setupTestContext(t, "")

	cmds := map[string]interface{ Run(*cli.Context) error }{
		"show":  &ProfileShowCmd{},
		"set":   &ProfileSetCmd{Age: ptr(40)},
		"reset": &ProfileResetCmd{},
	}
	for name, cmd := range cmds {
		t.Run(name, func(t *testing.T) {
			err := cmd.Run(ctx)
			if !errors.Is(err, cli.ErrNoUser) {
				t.Errorf("error = %v, want ErrNoUser", err)
			}
		})
	}
}

func TestProfileSetCmd(t *testing.T) {
	ctx, _ := setupTestContext(t, "alice")

	cmd := &ProfileSetCmd{
		Name:          ptr("阿青"),
		Age:           ptr(42),
		TreatmentType: []string{"化疗,放疗"},
		Status:        ptr(string(models.StatusRecovery)),
		Height:        ptr(165.0),
		Nutrition:     ptr("良好"),
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	p, err := ctx.Profiles.Load("alice")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if p.Name != "阿青" || p.Age != 42 || p.TreatmentStatus != models.StatusRecovery {
		t.Errorf("unexpected profile: %+v", p)
	}
	if len(p.TreatmentType) != 2 || p.TreatmentType[1] != "放疗" {
		t.Errorf("TreatmentType = %v", p.TreatmentType)
	}
	if p.Height == nil || *p.Height != 165 {
		t.Errorf("Height = %v", p.Height)
	}
	if p.CancerType != models.DefaultProfile().CancerType {
		t.Errorf("untouched fields should keep their value, CancerType = %q", p.CancerType)
	}

	// An explicitly empty value clears an optional field.
	if err := (&ProfileSetCmd{Nutrition: ptr("")}).Run(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	p, _ = ctx.Profiles.Load("alice")
	if p.NutritionStatus != nil {
		t.Errorf("NutritionStatus = %q, want unset", *p.NutritionStatus)
	}
}

func TestProfileSetCmd_Invalid(t *testing.T) {
	ctx, _ := setupTestContext(t, "alice")

	tests := []struct {
		name string
		cmd  *ProfileSetCmd
	}{
		{"zero age", &ProfileSetCmd{Age: ptr(0)}},
		{"unknown gender", &ProfileSetCmd{Gender: ptr("X")}},
		{"bad date", &ProfileSetCmd{StartDate: ptr("20-11-2024")}},
		{"negative weight", &ProfileSetCmd{Weight: ptr(-1.0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Run(ctx)
			if !errors.Is(err, apperrors.ErrInvalid) {
				t.Errorf("error = %v, want ErrInvalid", err)
			}
		})
	}

	if _, ok, _ := ctx.Store.Get(constants.NamespaceProfile, "alice"); ok {
		t.Error("invalid updates should not write a profile")
	}
}

func TestProfileResetCmd(t *testing.T) {
	ctx, _ := setupTestContext(t, "alice")

	if err := (&ProfileSetCmd{Age: ptr(50)}).Run(ctx); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := (&ProfileResetCmd{}).Run(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	p, _ := ctx.Profiles.Load("alice")
	if p.Age != models.DefaultProfile().Age {
		t.Errorf("Age after reset = %d, want default", p.Age)
	}
}
