package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseDateInLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	got, err := ParseDateInLocation("2024-11-20", loc)
	if err != nil {
		t.Fatalf("ParseDateInLocation() error = %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.November || got.Day() != 20 {
		t.Errorf("unexpected date %v", got)
	}
	if got.Hour() != 0 || got.Minute() != 0 || got.Location() != loc {
		t.Errorf("expected midnight in %v, got %v", loc, got)
	}

	if _, err := ParseDateInLocation("2024/11/20", loc); err == nil {
		t.Error("expected error for wrong separator")
	}
}

func TestMidnight(t *testing.T) {
	in := time.Date(2025, 3, 14, 15, 9, 26, 535, time.UTC)
	got := Midnight(in)
	want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Midnight() = %v, want %v", got, want)
	}
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2025, 1, 10, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"same day different times", time.Date(2025, 1, 10, 0, 1, 0, 0, time.UTC), base, 0},
		{"ten days back", base.AddDate(0, 0, -10), base, 10},
		{"future", base.AddDate(0, 0, 5), base, -5},
		{"across year", time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC), 1},
		{"leap day", time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 2},
		{"more than 292 years back", time.Date(1700, 1, 1, 0, 0, 0, 0, time.UTC), base, 118713},
		{"far future", time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC), base, -2912798},
		{"year one", time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), base, 739260},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.from, tt.to); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	// 2025-03-09 is a 23-hour day in New York
	from := time.Date(2025, 3, 8, 0, 0, 0, 0, loc)
	to := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	if got := DaysBetween(from, to); got != 2 {
		t.Errorf("DaysBetween() across DST = %d, want 2", got)
	}
}

func TestValidateDateFormat(t *testing.T) {
	if !ValidateDateFormat("2024-02-29") {
		t.Error("expected leap day to be valid")
	}
	if ValidateDateFormat("2023-02-29") {
		t.Error("expected non-leap Feb 29 to be invalid")
	}
	if ValidateDateFormat("") {
		t.Error("expected empty string to be invalid")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/.config/qingka/qingka.db", filepath.Join(home, ".config/qingka/qingka.db")},
		{"/tmp/qingka.db", "/tmp/qingka.db"},
		{"relative/qingka.db", "relative/qingka.db"},
		{"~other/file", "~other/file"},
	}

	for _, tt := range tests {
		got, err := ExpandPath(tt.in)
		if err != nil {
			t.Fatalf("ExpandPath(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
