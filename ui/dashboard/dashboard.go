package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/crownconsole/api"
	"github.com/deemkeen/crownconsole/domain"
	"github.com/deemkeen/crownconsole/ui/common"
	"github.com/deemkeen/crownconsole/util"
)

const recentLimit = 5

type pendingState int

const (
	pendingLoading pendingState = iota
	pendingLoaded
	pendingFailed
)

type recentLoadedMsg struct {
	seq int
	api.Result[[]domain.Punishment]
}

type pendingLoadedMsg struct {
	seq int
	api.Result[[]domain.Report]
}

type Model struct {
	deps common.Deps
	ctx  context.Context
	seq  int

	Loading  bool
	Recent   []domain.Punishment
	Err      error
	Pending  int
	pending  pendingState
	Selected int
	Width    int
	Height   int
}

func InitialModel(deps common.Deps, width, height int) Model {
	return Model{deps: deps, ctx: context.Background(), Width: width, Height: height}
}

// Load resets the page and fetches the recent punishments. The pending
// report count follows once that first fetch settles, whatever its outcome.
func (m Model) Load(ctx context.Context) (Model, tea.Cmd) {
	m.ctx = ctx
	m.seq++
	m.Loading = true
	m.Recent = nil
	m.Err = nil
	m.pending = pendingLoading
	m.Selected = 0
	return m, loadRecent(ctx, m.deps.Backend, m.seq)
}

func loadRecent(ctx context.Context, backend common.Backend, seq int) tea.Cmd {
	return func() tea.Msg {
		return recentLoadedMsg{seq: seq, Result: backend.ListPunishments(ctx, api.PunishmentQuery{Limit: recentLimit})}
	}
}

func loadPending(ctx context.Context, backend common.Backend, seq int) tea.Cmd {
	return func() tea.Msg {
		return pendingLoadedMsg{seq: seq, Result: backend.ListReports(ctx, domain.ReportOpen)}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recentLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.Loading = false
		if !msg.OK() {
			m.Err = msg.Failure()
		} else {
			m.Recent = msg.Value
		}
		return m, loadPending(m.ctx, m.deps.Backend, m.seq)

	case pendingLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if !msg.OK() {
			m.pending = pendingFailed
			return m, nil
		}
		m.Pending = len(msg.Value)
		m.pending = pendingLoaded
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.Selected > 0 {
				m.Selected--
			}
		case "down", "j":
			if m.Selected < len(m.Recent)-1 {
				m.Selected++
			}
		case "r":
			return m.Load(m.ctx)
		case "enter":
			if m.Selected < len(m.Recent) {
				return m, common.FetchPunishmentCmd(m.ctx, m.deps.Backend, m.Recent[m.Selected].ID)
			}
		}
	}
	return m, nil
}

func (m Model) pendingLabel() string {
	switch m.pending {
	case pendingLoading:
		return "..."
	case pendingFailed:
		return "?"
	case pendingLoaded:
		return strconv.Itoa(m.Pending)
	}
	panic("unreachable pending state")
}

func card(title, value string, color lipgloss.Color) string {
	body := common.ListBadgeStyle.Render(title) + "\n" +
		lipgloss.NewStyle().Foreground(color).Bold(true).Render(value)
	return common.CardStyle.Width(24).Render(body)
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render("dashboard"))
	s.WriteString("\n\n")

	recentCount := "..."
	if !m.Loading {
		recentCount = strconv.Itoa(len(m.Recent))
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		card("Recent Punishments", recentCount, lipgloss.Color(common.COLOR_ACCENT)),
		" ",
		card("Pending Reports", m.pendingLabel(), lipgloss.Color(common.COLOR_WARNING)),
		" ",
		card("Server Status", "● Online", lipgloss.Color(common.COLOR_SUCCESS)),
	))
	s.WriteString("\n\n")

	s.WriteString(common.CaptionStyle.Render("recent activity"))
	s.WriteString("\n")
	switch {
	case m.Err != nil:
		s.WriteString(common.ListErrorStyle.Render("Could not load recent activity: " + api.Describe(m.Err)))
		return s.String()
	case len(m.Recent) == 0:
		s.WriteString(common.ListEmptyStyle.Render("No recent activity"))
		return s.String()
	}

	for i, p := range m.Recent {
		line := fmt.Sprintf("%s %s  by %s  %s  %s",
			common.Badge(util.Pad(p.TypeLabel(), 8), domain.TypeTone(p.Type)),
			util.Pad(p.Target(), 16),
			util.Pad(p.Moderator(), 14),
			common.ListBadgeStyle.Render(util.Pad(util.FormatTimeAgo(p.Timestamp.Time), 16)),
			util.Truncate(p.Reason, 40),
		)
		if i == m.Selected {
			s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(line))
		} else {
			s.WriteString(common.ListUnselectedPrefix + common.ListItemStyle.Render(line))
		}
		s.WriteString("\n")
	}

	if chart := renderRing(domain.Distribution(m.Recent), ringRadius); chart != "" {
		s.WriteString("\n")
		s.WriteString(common.CaptionStyle.Render("distribution"))
		s.WriteString("\n")
		s.WriteString(chart)
	}

	return s.String()
}

// Help lists the page's keys for the footer.
func (m Model) Help() string {
	return "↑/↓: select • enter: details • r: refresh"
}
