package common

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/crownconsole/domain"
)

const (
	COLOR_ACCENT    = "#ff801a"
	COLOR_WHITE     = "#f8fafc"
	COLOR_DIM       = "#64748b"
	COLOR_HELP      = "#94a3b8"
	COLOR_SECONDARY = "#cbd5e1"
	COLOR_SUCCESS   = "#10b981"
	COLOR_ERROR     = "#ef4444"
	COLOR_WARNING   = "#f59e0b"
	COLOR_INFO      = "#3b82f6"
	COLOR_CRITICAL  = "#dc2626"

	COLOR_ORANGE = "#f97316"
	COLOR_YELLOW = "#eab308"
	COLOR_PURPLE = "#8b5cf6"
	COLOR_SLATE  = "#94a3b8"
	COLOR_BLUE   = "#3b82f6"
	COLOR_GRAY   = "#6b7280"
)

// ChartPalette colours distribution slices in order.
var ChartPalette = []string{"#ff801a", "#3b82f6", "#ef4444", "#10b981", "#f59e0b", "#8b5cf6"}

const (
	DefaultItemsPerPage = 12
	MinWindowWidth      = 100
	MinWindowHeight     = 24
	HeaderHeight        = 3
	FooterHeight        = 2
	ToastWidth          = 60

	ListSelectedPrefix   = "› "
	ListUnselectedPrefix = "  "
)

var (
	CaptionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_ACCENT)).
			Bold(true)

	ListItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_SECONDARY))

	ListItemSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(COLOR_WHITE)).
				Bold(true)

	ListHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_DIM)).
			Bold(true)

	ListEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_DIM)).
			Italic(true)

	ListBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_HELP))

	ListStatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_SUCCESS))

	ListErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_ERROR))

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(COLOR_DIM)).
			Width(12)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(COLOR_DIM)).
			Padding(0, 2)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(COLOR_ACCENT)).
			Padding(1, 2)

	AlertStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(COLOR_CRITICAL)).
			Foreground(lipgloss.Color(COLOR_CRITICAL)).
			Bold(true).
			Padding(1, 4)
)

// ToneColor maps a colour band to its terminal colour.
func ToneColor(t domain.Tone) lipgloss.Color {
	switch t {
	case domain.ToneGreen:
		return lipgloss.Color(COLOR_SUCCESS)
	case domain.ToneGray:
		return lipgloss.Color(COLOR_GRAY)
	case domain.ToneRed:
		return lipgloss.Color(COLOR_ERROR)
	case domain.ToneOrange:
		return lipgloss.Color(COLOR_ORANGE)
	case domain.ToneYellow:
		return lipgloss.Color(COLOR_YELLOW)
	case domain.TonePurple:
		return lipgloss.Color(COLOR_PURPLE)
	case domain.ToneSlate:
		return lipgloss.Color(COLOR_SLATE)
	case domain.ToneBlue:
		return lipgloss.Color(COLOR_BLUE)
	case domain.ToneNeutral:
		return lipgloss.Color(COLOR_SECONDARY)
	}
	panic("unreachable tone")
}

// Badge renders text in the tone's colour.
func Badge(text string, tone domain.Tone) string {
	return lipgloss.NewStyle().Foreground(ToneColor(tone)).Bold(true).Render(text)
}

func DefaultWindowWidth(width int) int {
	if width <= 0 {
		return 120
	}
	return width
}

func DefaultWindowHeight(height int) int {
	if height <= 0 {
		return 36
	}
	return height
}
