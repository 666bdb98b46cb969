package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/qingka/internal/feed"
	"github.com/julianstephens/qingka/internal/logger"
	"github.com/julianstephens/qingka/internal/milestone"
	"github.com/julianstephens/qingka/internal/models"
	"github.com/julianstephens/qingka/internal/profile"
	"github.com/julianstephens/qingka/internal/tui/components/dayslist"
	"github.com/julianstephens/qingka/internal/tui/components/feedlist"
	"github.com/julianstephens/qingka/internal/tui/forms"
)

type SessionState int

// The first five states are the tabs, in display order.
const (
	StateHome SessionState = iota
	StateKnow
	StateFeed
	StateDays
	StateProfile
	StatePostDetail
	StateAddPost
	StateAddDay
	StateEditProfile
	StateConfirmDelete
)

const tabCount = 5

var tabTitles = []string{"首页 Home", "吾知 Know", "社区 Feed", "纪念日 Days", "我的 Profile"}

type Options struct {
	UserID     string
	Profiles   *profile.Repository
	Feed       *feed.Repository
	Milestones *milestone.Repository
	Now        func() time.Time
}

// pendingDelete is what the confirmation dialog will remove.
type pendingDelete struct {
	postID  string
	eventID string
	title   string
	back    SessionState
}

type Model struct {
	opts Options

	state    SessionState
	lastTab  SessionState
	keys     KeyMap
	help     help.Model
	feedList feedlist.Model
	daysList dayslist.Model
	viewer   *feed.Viewer

	profile models.UserProfile
	events  []models.DaysMatterEvent

	// knowCursor indexes knowledge.Categories().
	knowCursor int

	form       *huh.Form
	postFields *forms.PostFields
	dayFields  *forms.DayFields
	profFields *forms.ProfileFields
	formError  string
	pending    *pendingDelete
	status     string
	quitting   bool
	width      int
	height     int
}

func NewModel(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	m := Model{
		opts:     opts,
		state:    StateHome,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		feedList: feedlist.New(nil, 0, 0),
		daysList: dayslist.New(nil, opts.Now(), 0, 0),
		viewer:   feed.NewViewer(opts.Feed),
	}
	m.reloadProfile()
	m.reloadFeed()
	m.reloadDays()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) reloadProfile() {
	p, err := m.opts.Profiles.Load(m.opts.UserID)
	if err != nil {
		m.setError("load profile", err)
		p = models.DefaultProfile()
	}
	m.profile = p
}

func (m *Model) reloadFeed() {
	posts, err := m.opts.Feed.List(m.feedList.Category())
	if err != nil {
		m.setError("load feed", err)
		return
	}
	m.feedList.SetPosts(posts)
}

func (m *Model) reloadDays() {
	events, err := m.opts.Milestones.List(m.opts.UserID)
	if err != nil {
		m.setError("load milestones", err)
		return
	}
	m.events = events
	m.daysList.SetEvents(events, m.opts.Now())
}

func (m *Model) setError(action string, err error) {
	logger.Error("TUI action failed", "action", action, "error", err)
	m.status = "⚠ " + action + ": " + err.Error()
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateKnow:
		keys = append(keys, m.keys.Up, m.keys.Down)
	case StateProfile:
		keys = append(keys, m.keys.Edit)
	case StatePostDetail:
		keys = append(keys, m.keys.Back, m.keys.Like, m.keys.Favorite, m.keys.Delete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	var actions []key.Binding
	switch m.state {
	case StateKnow:
		actions = []key.Binding{m.keys.Up, m.keys.Down}
	case StateFeed:
		fk := feedlist.DefaultKeyMap()
		actions = []key.Binding{fk.Add, fk.Open, fk.Like, fk.Favorite, fk.Delete, fk.PrevCat, fk.NextCat}
	case StateDays:
		dk := dayslist.DefaultKeyMap()
		actions = []key.Binding{dk.Add, dk.Delete}
	case StateProfile:
		actions = []key.Binding{m.keys.Edit}
	case StatePostDetail:
		actions = []key.Binding{m.keys.Back, m.keys.Like, m.keys.Favorite, m.keys.Delete}
	}
	return [][]key.Binding{global, actions}
}
