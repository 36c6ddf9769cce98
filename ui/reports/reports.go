package reports

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

type reportsLoadedMsg struct {
	seq int
	api.Result[[]domain.Report]
}

type statusUpdatedMsg struct {
	id     string
	status domain.ReportStatus
	api.Result[bool]
}

type Model struct {
	deps common.Deps
	ctx  context.Context
	seq  int

	Loading  bool
	Reports  []domain.Report
	Err      error
	Busy     string // id of the report being updated
	Selected int
	Offset   int
	Width    int
	Height   int
}

func InitialModel(deps common.Deps, width, height int) Model {
	return Model{deps: deps, ctx: context.Background(), Width: width, Height: height}
}

func (m Model) Load(ctx context.Context) (Model, tea.Cmd) {
	m.ctx = ctx
	return m.refresh()
}

// refresh reloads the list. An update still in flight is forgotten.
func (m Model) refresh() (Model, tea.Cmd) {
	m.Busy = ""
	m.seq++
	m.Loading = true
	m.Err = nil
	ctx, backend, seq := m.ctx, m.deps.Backend, m.seq
	return m, func() tea.Msg {
		return reportsLoadedMsg{seq: seq, Result: backend.ListReports(ctx, domain.ReportUnknown)}
	}
}

func updateStatus(ctx context.Context, deps common.Deps, id string, status domain.ReportStatus) tea.Cmd {
	return func() tea.Msg {
		res := deps.Backend.UpdateReportStatus(ctx, id, status)
		deps.Record(ctx, domain.JournalEntry{
			Action:    domain.ActionResolve,
			Target:    id,
			Detail:    status.String(),
			Succeeded: res.OK(),
			Outcome:   api.Describe(res.Failure()),
		})
		return statusUpdatedMsg{id: id, status: status, Result: res}
	}
}

func (m Model) selected() (domain.Report, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Reports) {
		return domain.Report{}, false
	}
	return m.Reports[m.Selected], true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.Loading = false
		if !msg.OK() {
			m.Err = msg.Failure()
			m.Reports = nil
			return m, nil
		}
		m.Reports = msg.Value
		m.Selected = min(m.Selected, max(len(m.Reports)-1, 0))
		m.Offset = min(m.Offset, m.Selected)
		return m, nil

	case statusUpdatedMsg:
		m.Busy = ""
		if !msg.OK() {
			// list stays as it was
			return m, common.Toast(common.ToastError, fmt.Sprintf("Could not update report %s: %s", msg.id, api.Describe(msg.Failure())))
		}
		m, cmd := m.refresh()
		return m, tea.Batch(cmd, common.Toast(common.ToastSuccess, fmt.Sprintf("Report %s marked %s", msg.id, msg.status)))

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
			if m.Selected < len(m.Reports)-1 {
				m.Selected++
				if m.Selected >= m.Offset+common.DefaultItemsPerPage {
					m.Offset = m.Selected - common.DefaultItemsPerPage + 1
				}
			}
		case "r":
			return m.refresh()
		case "a", "x":
			r, ok := m.selected()
			if !ok || !r.Actionable() || m.Busy != "" {
				return m, nil
			}
			status := domain.ReportResolved
			if msg.String() == "x" {
				status = domain.ReportRejected
			}
			m.Busy = r.ID
			return m, updateStatus(m.ctx, m.deps, r.ID, status)
		case "enter":
			if r, ok := m.selected(); ok {
				return m, common.FetchReportCmd(m.ctx, m.deps.Backend, r.ID)
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render(fmt.Sprintf("reports (%d)", len(m.Reports))))
	s.WriteString("\n\n")

	if m.Err != nil {
		s.WriteString(common.ListErrorStyle.Render("Could not load reports: " + api.Describe(m.Err)))
		return s.String()
	}
	if len(m.Reports) == 0 {
		s.WriteString(common.ListEmptyStyle.Render("No reports found"))
		return s.String()
	}

	s.WriteString(common.ListUnselectedPrefix + common.ListHeaderStyle.Render(fmt.Sprintf("%s %s %s %s %s %s",
		util.Pad("Target", 16), util.Pad("Category", 12), util.Pad("Reason", 32),
		util.Pad("Status", 9), util.Pad("Date", 16), "Actions")))
	s.WriteString("\n")

	end := min(m.Offset+common.DefaultItemsPerPage, len(m.Reports))
	for i := m.Offset; i < end; i++ {
		r := m.Reports[i]
		actions := ""
		switch {
		case m.Busy == r.ID:
			actions = "updating…"
		case r.Actionable():
			actions = "a: resolve  x: reject"
		}
		line := fmt.Sprintf("%s %s %s %s %s %s",
			util.Pad(r.Target(), 16),
			util.Pad(r.Category, 12),
			util.Pad(r.Reason, 32),
			common.Badge(util.Pad(r.StatusLabel(), 9), r.Status.Tone()),
			util.Pad(r.Timestamp.Format(util.DateTimeFormat()), 16),
			common.ListBadgeStyle.Render(actions),
		)
		if i == m.Selected {
			s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(line))
		} else {
			s.WriteString(common.ListUnselectedPrefix + common.ListItemStyle.Render(line))
		}
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) Help() string {
	return "↑/↓: select • enter: details • a: resolve • x: reject • r: refresh"
}
