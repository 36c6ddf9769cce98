package dashboard

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/crownconsole/domain"
	"github.com/deemkeen/crownconsole/ui/common"
)

const (
	ringRadius = 6
	ringHole   = 0.6
)

type slice struct {
	domain.TypeCount
	color lipgloss.Color
	end   float64 // cumulative fraction where the slice ends
}

func slices(dist []domain.TypeCount) ([]slice, int) {
	total := 0
	for _, tc := range dist {
		total += tc.Count
	}
	out := make([]slice, 0, len(dist))
	acc := 0
	for i, tc := range dist {
		acc += tc.Count
		out = append(out, slice{
			TypeCount: tc,
			color:     lipgloss.Color(common.ChartPalette[i%len(common.ChartPalette)]),
			end:       float64(acc) / float64(total),
		})
	}
	return out, total
}

// renderRing draws a proportional ring chart with a legend. It returns ""
// for an empty distribution.
func renderRing(dist []domain.TypeCount, radius int) string {
	ss, total := slices(dist)
	if total == 0 {
		return ""
	}

	// terminal cells are about twice as tall as wide, so x is stretched
	rows := 2*radius + 1
	cols := 4*radius + 1
	inner := float64(radius) * ringHole

	var ring strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			dx := float64(x-2*radius) / 2
			dy := float64(y - radius)
			d := math.Hypot(dx, dy)
			if d > float64(radius)+0.25 || d < inner {
				ring.WriteByte(' ')
				continue
			}
			// clockwise from twelve o'clock
			angle := math.Atan2(dx, -dy)
			if angle < 0 {
				angle += 2 * math.Pi
			}
			frac := angle / (2 * math.Pi)
			color := ss[len(ss)-1].color
			for _, s := range ss {
				if frac < s.end {
					color = s.color
					break
				}
			}
			ring.WriteString(lipgloss.NewStyle().Foreground(color).Render("█"))
		}
		if y < rows-1 {
			ring.WriteByte('\n')
		}
	}

	var legend strings.Builder
	for i, s := range ss {
		pct := float64(s.Count) * 100 / float64(total)
		legend.WriteString(lipgloss.NewStyle().Foreground(s.color).Render("■ "))
		legend.WriteString(fmt.Sprintf("%-8s %3d  %3.0f%%", s.Label, s.Count, pct))
		if i < len(ss)-1 {
			legend.WriteByte('\n')
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, ring.String(), "    ", legend.String())
}
