package punishments

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/crownconsole/api"
	"github.com/deemkeen/crownconsole/domain"
	"github.com/deemkeen/crownconsole/ui/common"
	"github.com/deemkeen/crownconsole/util"
)

const listLimit = 50

type column struct {
	title string
	width int
}

var columns = []column{
	{"Target", 16},
	{"Type", 8},
	{"Reason", 28},
	{"Status", 9},
	{"Duration", 10},
	{"Method", 6},
	{"Moderator", 14},
	{"Date", 16},
}

type punishmentsLoadedMsg struct {
	seq int
	api.Result[[]domain.Punishment]
}

type Model struct {
	deps common.Deps
	ctx  context.Context
	seq  int

	// Filter is TypeUnknown for "all types".
	Filter      domain.PunishmentType
	Loading     bool
	Punishments []domain.Punishment
	Err         error
	Selected    int
	Offset      int
	Width       int
	Height      int
}

func InitialModel(deps common.Deps, width, height int) Model {
	return Model{deps: deps, ctx: context.Background(), Width: width, Height: height}
}

func (m Model) Load(ctx context.Context) (Model, tea.Cmd) {
	m.ctx = ctx
	return m.refresh()
}

func (m Model) refresh() (Model, tea.Cmd) {
	m.seq++
	m.Loading = true
	m.Err = nil
	q := api.PunishmentQuery{Limit: listLimit, Type: m.Filter}
	ctx, backend, seq := m.ctx, m.deps.Backend, m.seq
	return m, func() tea.Msg {
		return punishmentsLoadedMsg{seq: seq, Result: backend.ListPunishments(ctx, q)}
	}
}

// nextFilter cycles all → ban → ... → freeze → all.
func nextFilter(f domain.PunishmentType) domain.PunishmentType {
	if f == domain.TypeUnknown {
		return domain.PunishmentTypes[0]
	}
	for i, t := range domain.PunishmentTypes {
		if t == f && i+1 < len(domain.PunishmentTypes) {
			return domain.PunishmentTypes[i+1]
		}
	}
	return domain.TypeUnknown
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case punishmentsLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.Loading = false
		if !msg.OK() {
			m.Err = msg.Failure()
			m.Punishments = nil
			return m, nil
		}
		m.Punishments = msg.Value
		m.Selected = min(m.Selected, max(len(m.Punishments)-1, 0))
		m.Offset = min(m.Offset, m.Selected)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.Selected > 0 {
				m.Selected--
				if m.Selected < m.Offset {
					m.Offset = m.Selected
				}
			}
		case "down", "j":
			if m.Selected < len(m.Punishments)-1 {
				m.Selected++
				if m.Selected >= m.Offset+m.visibleRows() {
					m.Offset = m.Selected - m.visibleRows() + 1
				}
			}
		case "f":
			m.Filter = nextFilter(m.Filter)
			m.Selected, m.Offset = 0, 0
			return m.refresh()
		case "r":
			return m.refresh()
		case "n":
			return m, func() tea.Msg { return common.OpenCreateMsg{} }
		case "enter":
			if m.Selected < len(m.Punishments) {
				return m, common.FetchPunishmentCmd(m.ctx, m.deps.Backend, m.Punishments[m.Selected].ID)
			}
		}
	}
	return m, nil
}

func (m Model) visibleRows() int {
	rows := m.Height - common.HeaderHeight - common.FooterHeight - 8
	if rows < 3 {
		return common.DefaultItemsPerPage
	}
	return rows
}

func (m Model) filterLabel() string {
	if m.Filter == domain.TypeUnknown {
		return "all types"
	}
	return m.Filter.Label()
}

func header() string {
	cells := make([]string, len(columns))
	for i, c := range columns {
		cells[i] = util.Pad(c.title, c.width)
	}
	return common.ListHeaderStyle.Render(strings.Join(cells, " "))
}

func row(p domain.Punishment) []string {
	values := []string{
		p.Target(),
		p.TypeLabel(),
		p.Reason,
		p.StatusLabel(),
		p.DurationLabel(),
		p.Method(),
		p.Moderator(),
		p.Timestamp.Format(util.DateTimeFormat()),
	}
	for i, v := range values {
		values[i] = util.Pad(v, columns[i].width)
	}
	values[1] = common.Badge(values[1], domain.TypeTone(p.Type))
	values[3] = common.Badge(values[3], p.StatusTone())
	return values
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render(fmt.Sprintf("punishments (%d) · filter: %s", len(m.Punishments), m.filterLabel())))
	s.WriteString("\n\n")

	if m.Err != nil {
		s.WriteString(common.ListErrorStyle.Render("Could not load punishments: " + api.Describe(m.Err)))
		return s.String()
	}
	if len(m.Punishments) == 0 {
		s.WriteString(common.ListEmptyStyle.Render("No punishments found"))
		return s.String()
	}

	s.WriteString(common.ListUnselectedPrefix + header())
	s.WriteString("\n")

	end := min(m.Offset+m.visibleRows(), len(m.Punishments))
	for i := m.Offset; i < end; i++ {
		line := strings.Join(row(m.Punishments[i]), " ")
		if i == m.Selected {
			s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(line))
		} else {
			s.WriteString(common.ListUnselectedPrefix + common.ListItemStyle.Render(line))
		}
		s.WriteString("\n")
	}
	if len(m.Punishments) > end {
		s.WriteString(common.ListBadgeStyle.Render(fmt.Sprintf("  … %d more", len(m.Punishments)-end)))
	}
	return s.String()
}

func (m Model) Help() string {
	return "↑/↓: select • enter: details • n: new • f: filter • r: refresh"
}
