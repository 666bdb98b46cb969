package dayslist

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/qingka/internal/milestone"
	"github.com/julianstephens/qingka/internal/models"
)

type AddDayMsg struct{}

type DeleteDayMsg struct {
	ID    string
	Title string
}

type Item struct {
	Event models.DaysMatterEvent
	Label string
}

func (i Item) Title() string       { return i.Label }
func (i Item) Description() string { return string(i.Event.Type) + " · " + i.Event.StartDate }
func (i Item) FilterValue() string { return i.Event.Title }

type KeyMap struct {
	Add    key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(events []models.DaysMatterEvent, today time.Time, width, height int) Model {
	l := list.New(items(events, today), list.NewDefaultDelegate(), width, height)
	l.Title = "Days"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func items(events []models.DaysMatterEvent, today time.Time) []list.Item {
	out := make([]list.Item, len(events))
	for i, e := range events {
		out[i] = Item{Event: e, Label: milestone.Describe(e, today)}
	}
	return out
}

func (m *Model) SetEvents(events []models.DaysMatterEvent, today time.Time) {
	m.list.SetItems(items(events, today))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddDayMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteDayMsg{ID: i.Event.ID, Title: i.Event.Title} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No milestones yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
