package header

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/crownconsole/ui/common"
	"github.com/deemkeen/crownconsole/util"
)

var (
	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_HELP)).
			Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_WHITE)).
			Background(lipgloss.Color(common.COLOR_ACCENT)).
			Bold(true).
			Padding(0, 1)
	brandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_ACCENT)).
			Bold(true)
)

type Model struct {
	Width     int
	Current   common.Page
	AdminName string
}

// Tab renders one navigation entry, highlighted when it is the current page.
func (m Model) Tab(p common.Page) string {
	label := fmt.Sprintf("%d %s", int(p)+1, p)
	if p == m.Current {
		return activeTabStyle.Render(label)
	}
	return tabStyle.Render(label)
}

func (m Model) View() string {
	tabs := make([]string, 0, len(common.Pages))
	for _, p := range common.Pages {
		tabs = append(tabs, m.Tab(p))
	}
	left := brandStyle.Render("♛ "+util.GetNameAndVersion()) + "  " + strings.Join(tabs, " ")
	right := common.ListBadgeStyle.Render("signed in as " + m.AdminName)

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + right
	rule := lipgloss.NewStyle().Foreground(lipgloss.Color(common.COLOR_DIM)).Render(strings.Repeat("─", max(m.Width, 1)))
	return line + "\n" + rule
}
