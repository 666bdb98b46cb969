package main

import "testing"

func TestSkipsLoad(t *testing.T) {
	tests := []struct {
		command string
		want    bool
	}{
		{"init", true},
		{"migrate", true},
		{"doctor", true},
		{"keyring set <value>", true},
		{"keyring status", true},
		{"debug db-path", true},
		{"debug keys <namespace>", false},
		{"post list", false},
		{"tui", false},
		{"backup create", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			if got := skipsLoad(tt.command); got != tt.want {
				t.Errorf("skipsLoad(%q) = %v, want %v", tt.command, got, tt.want)
			}
		})
	}
}
