package dayslist

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/qingka/internal/models"
)

var today = time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC)

func sampleEvents() []models.DaysMatterEvent {
	return []models.DaysMatterEvent{
		{ID: "e1", Title: "开始治疗", Type: models.CountUp, StartDate: "2025-03-01"},
		{ID: "e2", Title: "复查", Type: models.CountDown, StartDate: "2025-03-18"},
	}
}

func TestItemLabels(t *testing.T) {
	m := New(sampleEvents(), today, 80, 20)
	want := []string{"开始治疗 已经 7 天", "复查 还有 10 天"}
	got := m.list.Items()
	if len(got) != len(want) {
		t.Fatalf("got %d items, want %d", len(got), len(want))
	}
	for i, it := range got {
		if it.(Item).Title() != want[i] {
			t.Errorf("item %d Title() = %q, want %q", i, it.(Item).Title(), want[i])
		}
	}
}

func TestKeys(t *testing.T) {
	m := New(sampleEvents(), today, 80, 20)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if cmd == nil {
		t.Fatal("'a' produced no command")
	}
	if _, ok := cmd().(AddDayMsg); !ok {
		t.Error("'a' should request the add form")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if cmd == nil {
		t.Fatal("'d' produced no command")
	}
	if got, ok := cmd().(DeleteDayMsg); !ok || got.ID != "e1" || got.Title != "开始治疗" {
		t.Errorf("'d' produced %#v", got)
	}
}

func TestSetEventsRelabels(t *testing.T) {
	m := New(sampleEvents(), today, 80, 20)
	m.SetEvents(sampleEvents()[1:], today.AddDate(0, 0, 5))

	items := m.list.Items()
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if got := items[0].(Item).Title(); got != "复查 还有 5 天" {
		t.Errorf("Title() = %q", got)
	}
}
