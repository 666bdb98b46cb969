package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/qingka/internal/knowledge"
	"github.com/julianstephens/qingka/internal/milestone"
	"github.com/julianstephens/qingka/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateHome:
		content = m.viewHome()
	case StateKnow:
		content = m.viewKnow()
	case StateFeed:
		content = docStyle.Render(m.feedList.View())
	case StateDays:
		content = docStyle.Render(m.daysList.View())
	case StateProfile:
		content = m.viewProfile()
	case StatePostDetail:
		content = m.viewPostDetail()
	case StateAddPost, StateAddDay, StateEditProfile:
		content = m.viewForm()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	parts := []string{m.viewTabs(), content}
	if m.status != "" {
		parts = append(parts, warningStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) activeTab() SessionState {
	switch m.state {
	case StatePostDetail, StateAddPost:
		return StateFeed
	case StateAddDay:
		return StateDays
	case StateEditProfile:
		return StateProfile
	case StateConfirmDelete:
		if m.pending != nil && m.pending.eventID != "" {
			return StateDays
		}
		return StateFeed
	}
	return m.state
}

func (m Model) viewTabs() string {
	active := m.activeTab()
	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHome() string {
	today := m.opts.Now()
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("你好, %s 🌿", m.profile.Name)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(today.Format("2006年01月02日")))
	b.WriteString("\n\n")

	status := fmt.Sprintf("%s · %s · 第 %d 周期", m.profile.CancerType, m.profile.TreatmentStatus.Label(), m.profile.CurrentCycle)
	if start, err := utils.ParseDateInLocation(m.profile.TreatmentStartDate, today.Location()); err == nil {
		if days := utils.DaysBetween(start, utils.Midnight(today)); days >= 0 {
			status += fmt.Sprintf("\n治疗开始第 %d 天", days)
		}
	}
	b.WriteString(cardStyle.Render(status))
	b.WriteString("\n\n")

	if len(m.events) == 0 {
		b.WriteString(mutedStyle.Render("还没有纪念日。在 Days 页按 'a' 添加。"))
	} else {
		b.WriteString(cardStyle.Render(milestone.Describe(m.events[0], today)))
	}
	return docStyle.Render(b.String())
}

func (m Model) viewKnow() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("吾知 · 知识中心"))
	b.WriteString("\n\n")

	cats := knowledge.Categories()
	for i, c := range cats {
		line := fmt.Sprintf("  %s", c.Title)
		if i == m.knowCursor {
			line = titleStyle.Render("▸ " + c.Title)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	c := cats[m.knowCursor]
	detail := []string{c.Description, mutedStyle.Render(strings.Join(c.Subtopics, " · "))}
	for _, g := range c.Guides {
		detail = append(detail, "• "+g)
	}
	b.WriteString(cardStyle.Render(strings.Join(detail, "\n")))
	b.WriteString("\n\n")

	b.WriteString(mutedStyle.Render(fmt.Sprintf("为你推荐 (%s)", m.profile.CancerType)))
	for _, a := range knowledge.Articles(m.profile.CancerType) {
		b.WriteString(fmt.Sprintf("\n[%s] %s", a.Tag, a.Title))
	}
	return docStyle.Render(b.String())
}

func (m Model) viewProfile() string {
	p := m.profile
	lines := []string{
		titleStyle.Render(p.Name),
		fmt.Sprintf("年龄: %d   性别: %s", p.Age, p.Gender),
		fmt.Sprintf("癌种: %s", p.CancerType),
		fmt.Sprintf("治疗方式: %s", strings.Join(p.TreatmentType, "、")),
		fmt.Sprintf("状态: %s · 第 %d 周期 · 自 %s", p.TreatmentStatus.Label(), p.CurrentCycle, p.TreatmentStartDate),
		fmt.Sprintf("伴侣状态: %s   生育顾虑: %t", p.PartnerStatus, p.FertilityConcerns),
	}
	if p.Height != nil {
		lines = append(lines, fmt.Sprintf("身高: %.1f cm", *p.Height))
	}
	if p.Weight != nil {
		lines = append(lines, fmt.Sprintf("体重: %.1f kg", *p.Weight))
	}
	if p.NutritionStatus != nil {
		lines = append(lines, fmt.Sprintf("营养状况: %s", *p.NutritionStatus))
	}
	if p.DetailedIllness != nil {
		lines = append(lines, fmt.Sprintf("病情详情: %s", *p.DetailedIllness))
	}
	lines = append(lines, "", mutedStyle.Render("按 'e' 编辑"))
	return docStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) viewPostDetail() string {
	p, ok := m.viewer.Current()
	if !ok {
		return docStyle.Render(mutedStyle.Render("This post is no longer available."))
	}

	like, fav := "♡", "☆"
	if p.IsLiked {
		like = "♥"
	}
	if p.IsFavorited {
		fav = "★"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(p.CoverEmoji + " " + p.Author))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(p.Timestamp.Local().Format("2006-01-02 15:04")))
	b.WriteString("\n\n")
	b.WriteString(p.Body())
	b.WriteString("\n\n")
	if len(p.Tags) > 0 {
		b.WriteString(mutedStyle.Render("#" + strings.Join(p.Tags, " #")))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("%s %d   %s %d   💬 %d", like, p.Likes, fav, p.Favorites, p.Comments))
	return docStyle.Render(cardStyle.Render(b.String()))
}

func (m Model) viewForm() string {
	view := m.form.View()
	if m.formError != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, dangerStyle.Render(m.formError))
	}
	return docStyle.Render(view)
}

func (m Model) viewConfirmDelete() string {
	title := ""
	if m.pending != nil {
		title = m.pending.title
	}
	return lipgloss.Place(m.width, max(m.height-4, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("确定要删除吗? Delete this?"),
			mutedStyle.Render(title),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
