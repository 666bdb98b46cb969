package milestone

import (
	"testing"
	"time"

	"github.com/julianstephens/qingka/internal/models"
)

func event(typ models.MilestoneType, start string) models.DaysMatterEvent {
	return models.DaysMatterEvent{Title: "t", Type: typ, StartDate: start}
}

func TestComputeElapsedDays(t *testing.T) {
	today := time.Date(2025, 3, 15, 16, 45, 0, 0, time.UTC)

	tests := []struct {
		name  string
		event models.DaysMatterEvent
		want  int
	}{
		{"count up today", event(models.CountUp, "2025-03-15"), 0},
		{"count up ten days ago", event(models.CountUp, "2025-03-05"), 10},
		{"count up future is absolute", event(models.CountUp, "2025-03-20"), 5},
		{"count up across year", event(models.CountUp, "2024-03-15"), 365},
		{"count down past", event(models.CountDown, "2025-03-05"), 0},
		{"count down future", event(models.CountDown, "2025-04-15"), 0},
		{"count down today", event(models.CountDown, "2025-03-15"), 0},
		{"invalid date", event(models.CountUp, "not-a-date"), 0},
		{"count up from 1700", event(models.CountUp, "1700-01-01"), 118777},
		{"count up to 9999 is absolute", event(models.CountUp, "9999-12-31"), 2912734},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeElapsedDays(tt.event, today); got != tt.want {
				t.Errorf("ComputeElapsedDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRemainingAndDisplayDays(t *testing.T) {
	today := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		event         models.DaysMatterEvent
		wantRemaining int
		wantDisplay   int
	}{
		{"count down future", event(models.CountDown, "2025-03-25"), 10, 10},
		{"count down past", event(models.CountDown, "2025-03-01"), 0, 0},
		{"count down today", event(models.CountDown, "2025-03-15"), 0, 0},
		{"count up shows elapsed", event(models.CountUp, "2025-03-01"), 0, 14},
		{"count down to 9999", event(models.CountDown, "9999-12-31"), 2912734, 2912734},
		{"count down from 1700", event(models.CountDown, "1700-01-01"), 0, 0},
		{"count up from 1700", event(models.CountUp, "1700-01-01"), 0, 118777},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemainingDays(tt.event, today); got != tt.wantRemaining {
				t.Errorf("RemainingDays() = %d, want %d", got, tt.wantRemaining)
			}
			if got := DisplayDays(tt.event, today); got != tt.wantDisplay {
				t.Errorf("DisplayDays() = %d, want %d", got, tt.wantDisplay)
			}
		})
	}
}

func TestComputeElapsedDays_LocalMidnight(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Skip("timezone data unavailable")
	}
	// 00:30 in Shanghai is still the previous day in UTC; the count follows
	// the local calendar date.
	today := time.Date(2025, 3, 16, 0, 30, 0, 0, loc)
	if got := ComputeElapsedDays(event(models.CountUp, "2025-03-15"), today); got != 1 {
		t.Errorf("ComputeElapsedDays() = %d, want 1", got)
	}
}

func TestDescribe(t *testing.T) {
	today := time.Date(2025, 3, 8, 10, 0, 0, 0, time.Local)
	tests := []struct {
		event models.DaysMatterEvent
		want  string
	}{
		{models.DaysMatterEvent{Title: "开始治疗", Type: models.CountUp, StartDate: "2025-03-01"}, "开始治疗 已经 7 天"},
		{models.DaysMatterEvent{Title: "复查", Type: models.CountDown, StartDate: "2025-03-18"}, "复查 还有 10 天"},
		{models.DaysMatterEvent{Title: "已过", Type: models.CountDown, StartDate: "2025-03-01"}, "已过 还有 0 天"},
	}
	for _, tt := range tests {
		if got := Describe(tt.event, today); got != tt.want {
			t.Errorf("Describe(%+v) = %q, want %q", tt.event, got, tt.want)
		}
	}
}
