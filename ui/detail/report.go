package detail

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/crownconsole/domain"
	"github.com/deemkeen/crownconsole/ui/common"
	"github.com/deemkeen/crownconsole/util"
)

// ReportModel shows one report.
type ReportModel struct {
	Report domain.Report
}

func NewReport(r domain.Report) ReportModel {
	return ReportModel{Report: r}
}

func (m ReportModel) Update(msg tea.Msg) (ReportModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q", "enter":
			return m, func() tea.Msg { return common.CloseModalMsg{} }
		}
	}
	return m, nil
}

func (m ReportModel) View() string {
	r := m.Report
	reason := r.Reason
	if reason == "" {
		reason = "-"
	}
	lines := []string{
		common.CaptionStyle.Render(fmt.Sprintf("report #%s", r.ID)),
		"",
		field("Target", r.Target()),
		field("Category", r.Category),
		field("Status", common.Badge(r.StatusLabel(), r.Status.Tone())),
		field("Date", r.Timestamp.Format(util.DateTimeFormat())),
		"",
		common.LabelStyle.Render("Reason"),
		util.Truncate(reason, 200),
		"",
		common.ListBadgeStyle.Render("esc: close"),
	}
	return common.ModalStyle.Width(64).Render(strings.Join(lines, "\n"))
}
