package storage

import (
	"path/filepath"
	"testing"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetSetJSON(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "qingka.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	want := sample{Name: "小青友", Count: 3}
	if err := SetJSON(store, "profile", "u1", want); err != nil {
		t.Fatalf("SetJSON failed: %v", err)
	}

	var got sample
	if !GetJSON(store, "profile", "u1", &got) {
		t.Fatal("GetJSON reported absent")
	}
	if got != want {
		t.Errorf("GetJSON = %+v, want %+v", got, want)
	}

	tests := []struct {
		name string
		raw  *string
	}{
		{"missing", nil},
		{"corrupt", strPtr("{broken")},
		{"wrong shape", strPtr(`["not","an","object"]`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.raw != nil {
				if err := store.Set("profile", tt.name, *tt.raw); err != nil {
					t.Fatalf("Set failed: %v", err)
				}
			}
			var v sample
			if GetJSON(store, "profile", tt.name, &v) {
				t.Errorf("GetJSON should report absent for %s value", tt.name)
			}
		})
	}
}

func TestGetJSON_ReadError(t *testing.T) {
	// Never loaded, so every Get fails.
	store := NewJSONStore(filepath.Join(t.TempDir(), "qingka.json"))
	var v sample
	if GetJSON(store, "profile", "u1", &v) {
		t.Error("GetJSON should treat read errors as absent")
	}
}

func strPtr(s string) *string { return &s }
