package moderators

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/crownconsole/api"
	"github.com/deemkeen/crownconsole/domain"
	"github.com/deemkeen/crownconsole/ui/common"
	"github.com/deemkeen/crownconsole/util"
)

const Placeholder = "Moderator directory coming soon..."

type statsLoadedMsg struct {
	seq int
	api.Result[domain.ModeratorStats]
}

type Model struct {
	deps common.Deps
	ctx  context.Context
	seq  int

	Loading bool
	Stats   *domain.ModeratorStats
	Err     error
	Width   int
	Height  int
}

func InitialModel(deps common.Deps, width, height int) Model {
	return Model{deps: deps, ctx: context.Background(), Width: width, Height: height}
}

// Load fetches the signed-in admin's own stats when the session names one.
func (m Model) Load(ctx context.Context) (Model, tea.Cmd) {
	m.ctx = ctx
	m.seq++
	m.Stats = nil
	m.Err = nil
	id, ok := m.deps.Session.AdminUUID()
	if !ok {
		m.Loading = false
		return m, nil
	}
	m.Loading = true
	backend, seq := m.deps.Backend, m.seq
	return m, func() tea.Msg {
		return statsLoadedMsg{seq: seq, Result: backend.ModeratorStats(ctx, id.String())}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.Loading = false
		if !msg.OK() {
			m.Err = msg.Failure()
			return m, nil
		}
		stats := msg.Value
		m.Stats = &stats
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m.Load(m.ctx)
		}
	}
	return m, nil
}

func formatPlaytime(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}
	h := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %dm", h, mins)
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(common.CaptionStyle.Render("moderators"))
	s.WriteString("\n\n")
	s.WriteString(common.ListEmptyStyle.Render(Placeholder))
	s.WriteString("\n\n")

	if _, ok := m.deps.Session.AdminUUID(); !ok {
		return s.String()
	}

	s.WriteString(common.CaptionStyle.Render("your activity · " + m.deps.Session.AdminName()))
	s.WriteString("\n")
	switch {
	case m.Err != nil:
		s.WriteString(common.ListErrorStyle.Render("Could not load moderator stats: " + api.Describe(m.Err)))
	case m.Stats == nil:
		s.WriteString(common.ListBadgeStyle.Render("..."))
	default:
		last := "never"
		if n := len(m.Stats.Sessions); n > 0 {
			last = util.FormatTimeAgo(m.Stats.Sessions[n-1].LoginAt.Time)
		}
		s.WriteString(strings.Join([]string{
			common.LabelStyle.Render("Punishments") + " " + fmt.Sprint(m.Stats.TotalPunishments),
			common.LabelStyle.Render("Sessions") + " " + fmt.Sprint(len(m.Stats.Sessions)),
			common.LabelStyle.Render("Avg. session") + " " + formatPlaytime(m.Stats.AveragePlaytimeDuration()),
			common.LabelStyle.Render("Last login") + " " + last,
		}, "\n"))
	}
	return s.String()
}

func (m Model) Help() string {
	return "r: refresh"
}
