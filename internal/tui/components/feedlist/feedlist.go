package feedlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/qingka/internal/feed"
	"github.com/julianstephens/qingka/internal/models"
)

type AddPostMsg struct{}

type OpenPostMsg struct {
	ID string
}

type LikePostMsg struct {
	ID string
}

type FavoritePostMsg struct {
	ID string
}

type DeletePostMsg struct {
	ID string
}

// FilterMsg asks the parent to reload the list for a category.
type FilterMsg struct {
	Tag string
}

type Item struct {
	Post models.SocialPost
}

func (i Item) Title() string {
	return i.Post.CoverEmoji + " " + i.Post.Content
}

func (i Item) Description() string {
	like, fav := "♡", "☆"
	if i.Post.IsLiked {
		like = "♥"
	}
	if i.Post.IsFavorited {
		fav = "★"
	}
	return fmt.Sprintf("%s · #%s · %s %d  %s %d",
		i.Post.Author, strings.Join(i.Post.Tags, " #"), like, i.Post.Likes, fav, i.Post.Favorites)
}

func (i Item) FilterValue() string { return i.Post.Content }

type KeyMap struct {
	Add      key.Binding
	Open     key.Binding
	Like     key.Binding
	Favorite key.Binding
	Delete   key.Binding
	NextCat  key.Binding
	PrevCat  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "share"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		NextCat: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next category"),
		),
		PrevCat: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev category"),
		),
	}
}

var (
	activeCategoryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true).Padding(0, 1)
	inactiveCategoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)
)

type Model struct {
	list       list.Model
	keys       KeyMap
	categories []feed.Category
	current    int
}

func New(posts []models.SocialPost, width, height int) Model {
	l := list.New(items(posts), list.NewDefaultDelegate(), width, height)
	l.Title = "Feed"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Open, keys.Like, keys.Favorite, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Open, keys.Like, keys.Favorite, keys.Delete, keys.PrevCat, keys.NextCat}
	}

	return Model{list: l, keys: keys, categories: feed.Categories()}
}

func items(posts []models.SocialPost) []list.Item {
	out := make([]list.Item, len(posts))
	for i, p := range posts {
		out[i] = Item{Post: p}
	}
	return out
}

// SetPosts replaces the shown posts, keeping the cursor where possible.
func (m *Model) SetPosts(posts []models.SocialPost) {
	idx := m.list.Index()
	m.list.SetItems(items(posts))
	if idx >= len(posts) && len(posts) > 0 {
		idx = len(posts) - 1
	}
	m.list.Select(idx)
}

// Category returns the id of the selected category ("all" for no filter).
func (m Model) Category() string {
	return m.categories[m.current].ID
}

func (m Model) Selected() (models.SocialPost, bool) {
	i, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.SocialPost{}, false
	}
	return i.Post, true
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddPostMsg{} }
		case key.Matches(msg, m.keys.NextCat):
			m.current = (m.current + 1) % len(m.categories)
			tag := m.Category()
			return m, func() tea.Msg { return FilterMsg{Tag: tag} }
		case key.Matches(msg, m.keys.PrevCat):
			m.current = (m.current - 1 + len(m.categories)) % len(m.categories)
			tag := m.Category()
			return m, func() tea.Msg { return FilterMsg{Tag: tag} }
		}

		if p, ok := m.Selected(); ok {
			switch {
			case key.Matches(msg, m.keys.Open):
				return m, func() tea.Msg { return OpenPostMsg{ID: p.ID} }
			case key.Matches(msg, m.keys.Like):
				return m, func() tea.Msg { return LikePostMsg{ID: p.ID} }
			case key.Matches(msg, m.keys.Favorite):
				return m, func() tea.Msg { return FavoritePostMsg{ID: p.ID} }
			case key.Matches(msg, m.keys.Delete):
				return m, func() tea.Msg { return DeletePostMsg{ID: p.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) viewCategories() string {
	var tabs []string
	for i, c := range m.categories {
		label := c.Emoji + " " + c.Title
		if i == m.current {
			tabs = append(tabs, activeCategoryStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveCategoryStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) View() string {
	body := m.list.View()
	if len(m.list.Items()) == 0 {
		body = "\n  No posts here yet.\n  Press 'a' to share one."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewCategories(), body)
}

func (m *Model) SetSize(width, height int) {
	// One line for the category bar.
	m.list.SetSize(width, height-1)
}
