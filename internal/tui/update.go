package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/qingka/internal/knowledge"
	"github.com/julianstephens/qingka/internal/tui/components/dayslist"
	"github.com/julianstephens/qingka/internal/tui/components/feedlist"
	"github.com/julianstephens/qingka/internal/tui/forms"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Tabs, help and status lines.
		m.feedList.SetSize(msg.Width-4, msg.Height-6)
		m.daysList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil
	}

	switch m.state {
	case StateAddPost, StateAddDay, StateEditProfile:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case feedlist.AddPostMsg:
		m.postFields = forms.NewPostFields()
		m.form = forms.NewPostForm(m.postFields)
		return m.enterForm(StateAddPost)

	case feedlist.FilterMsg:
		m.reloadFeed()
		return m, nil

	case feedlist.OpenPostMsg:
		if _, err := m.viewer.Open(msg.ID); err != nil {
			m.setError("open post", err)
			m.reloadFeed()
			return m, nil
		}
		m.state = StatePostDetail
		return m, nil

	case feedlist.LikePostMsg:
		if _, err := m.opts.Feed.ToggleLike(msg.ID); err != nil {
			m.setError("like", err)
		}
		m.reloadFeed()
		return m, nil

	case feedlist.FavoritePostMsg:
		if _, err := m.opts.Feed.ToggleFavorite(msg.ID); err != nil {
			m.setError("favorite", err)
		}
		m.reloadFeed()
		return m, nil

	case feedlist.DeletePostMsg:
		title := msg.ID
		if p, err := m.opts.Feed.Get(msg.ID); err == nil {
			title = p.Content
		}
		m.pending = &pendingDelete{postID: msg.ID, title: title, back: m.state}
		m.state = StateConfirmDelete
		return m, nil

	case dayslist.AddDayMsg:
		m.dayFields = forms.NewDayFields(m.opts.Now())
		m.form = forms.NewDayForm(m.dayFields)
		return m.enterForm(StateAddDay)

	case dayslist.DeleteDayMsg:
		m.pending = &pendingDelete{eventID: msg.ID, title: msg.Title, back: StateDays}
		m.state = StateConfirmDelete
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.switchTab(1)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.switchTab(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateKnow:
		if msg, ok := msg.(tea.KeyMsg); ok {
			m.moveKnowCursor(msg)
		}
	case StateFeed:
		m.feedList, cmd = m.feedList.Update(msg)
	case StateDays:
		m.daysList, cmd = m.daysList.Update(msg)
	case StateProfile:
		if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Edit) {
			m.profFields = forms.ProfileFieldsFrom(m.profile)
			m.form = forms.NewProfileForm(m.profFields)
			return m.enterForm(StateEditProfile)
		}
	case StatePostDetail:
		return m.updatePostDetail(msg)
	}
	return m, cmd
}

// moveKnowCursor wraps around the category list.
func (m *Model) moveKnowCursor(msg tea.KeyMsg) {
	n := len(knowledge.Categories())
	switch {
	case key.Matches(msg, m.keys.Up):
		m.knowCursor = (m.knowCursor - 1 + n) % n
	case key.Matches(msg, m.keys.Down):
		m.knowCursor = (m.knowCursor + 1) % n
	}
}

// switchTab cycles through the tabs; the detail view counts as Feed.
func (m *Model) switchTab(delta int) {
	current := m.state
	if current == StatePostDetail {
		m.viewer.Close()
		current = StateFeed
	}
	if current >= tabCount {
		current = m.lastTab
	}
	m.state = SessionState((int(current) + delta + tabCount) % tabCount)
	m.lastTab = m.state
	m.status = ""

	switch m.state {
	case StateHome:
		m.reloadDays()
		m.reloadProfile()
	case StateKnow:
		m.reloadProfile()
	case StateFeed:
		m.reloadFeed()
	case StateDays:
		m.reloadDays()
	case StateProfile:
		m.reloadProfile()
	}
}

func (m Model) updatePostDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	post, open := m.viewer.Current()
	if !open {
		m.state = StateFeed
		m.reloadFeed()
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		m.viewer.Close()
		m.state = StateFeed
		m.reloadFeed()
	case key.Matches(keyMsg, m.keys.Like):
		if _, err := m.opts.Feed.ToggleLike(post.ID); err != nil {
			m.setError("like", err)
		}
	case key.Matches(keyMsg, m.keys.Favorite):
		if _, err := m.opts.Feed.ToggleFavorite(post.ID); err != nil {
			m.setError("favorite", err)
		}
	case key.Matches(keyMsg, m.keys.Delete):
		m.pending = &pendingDelete{postID: post.ID, title: post.Content, back: StatePostDetail}
		m.state = StateConfirmDelete
	}
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.pending == nil {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		pending := m.pending
		m.pending = nil
		if pending.eventID != "" {
			if err := m.opts.Milestones.Delete(m.opts.UserID, pending.eventID); err != nil {
				m.setError("delete milestone", err)
			}
			m.reloadDays()
			m.state = StateDays
			return m, nil
		}

		// Deleting through the viewer closes the detail view if it showed this post.
		if err := m.viewer.Delete(pending.postID); err != nil {
			m.setError("delete post", err)
		}
		m.reloadFeed()
		m.state = pending.back
		if _, open := m.viewer.Current(); !open && m.state == StatePostDetail {
			m.state = StateFeed
		}
	case key.Matches(keyMsg, m.keys.Cancel):
		m.state = m.pending.back
		m.pending = nil
	}
	return m, nil
}

func (m Model) enterForm(state SessionState) (tea.Model, tea.Cmd) {
	m.formError = ""
	m.state = state
	return m, m.form.Init()
}

func (m Model) formReturnState() SessionState {
	switch m.state {
	case StateAddPost:
		return StateFeed
	case StateAddDay:
		return StateDays
	default:
		return StateProfile
	}
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	back := m.formReturnState()
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = back
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.saveForm(); err != nil {
			// Stay in the form so the user can correct it or leave with esc.
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.formError = ""
		m.state = back
	case huh.StateAborted:
		m.state = back
	}
	return m, cmd
}

func (m *Model) saveForm() error {
	switch m.state {
	case StateAddPost:
		if _, err := m.opts.Feed.Create(m.postFields.Draft()); err != nil {
			return err
		}
		m.reloadFeed()
	case StateAddDay:
		if _, err := m.opts.Milestones.Create(m.opts.UserID, m.dayFields.Event()); err != nil {
			return err
		}
		m.reloadDays()
	case StateEditProfile:
		p, err := m.profFields.Profile()
		if err != nil {
			return err
		}
		if err := m.opts.Profiles.Save(m.opts.UserID, p); err != nil {
			return err
		}
		m.profile = p
	}
	return nil
}
