package system

import (
	"encoding/json"
	"testing"

	"github.com/julianstephens/qingka/internal/constants"
	"github.com/julianstephens/qingka/internal/models"
)

func TestDebugDBPathCmd(t *testing.T) {
	ctx, dbPath, out := setupTestContext(t)

	if err := (&DebugDBPathCmd{}).Run(ctx); err != nil {
		t.Fatalf("db-path failed: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["path"] != dbPath {
		t.Errorf("path = %q, want %q", got["path"], dbPath)
	}
}

func TestDebugKeysAndDump(t *testing.T) {
	ctx, _, out := setupJSONContext(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := ctx.Profiles.Save("alice", models.DefaultProfile()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	out.Reset()
	if err := (&DebugKeysCmd{Namespace: constants.NamespaceProfile}).Run(ctx); err != nil {
		t.Fatalf("keys failed: %v", err)
	}
	if out.String() != "alice\n" {
		t.Errorf("keys output = %q", out.String())
	}

	out.Reset()
	if err := (&DebugDumpCmd{Namespace: constants.NamespaceProfile, Key: "alice"}).Run(ctx); err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	var p models.UserProfile
	if err := json.Unmarshal(out.Bytes(), &p); err != nil {
		t.Fatalf("dump output is not a profile: %v", err)
	}
	if p.Name != models.DefaultProfile().Name {
		t.Errorf("Name = %q", p.Name)
	}

	if err := (&DebugDumpCmd{Namespace: constants.NamespaceProfile, Key: "bob"}).Run(ctx); err == nil {
		t.Error("dump of a missing key should fail")
	}
	if err := (&DebugKeysCmd{Namespace: "nope"}).Run(ctx); err == nil {
		t.Error("unknown namespace should fail")
	}
}
