// Package render draws textual snapshots of individual garden states.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cell is a grid position in a snapshot.
type Cell struct {
	X int
	Y int
}

// Snapshot is everything the renderer needs to draw one state.
type Snapshot struct {
	Label       string
	Probability float64
	Age         float64
	GridSize    int
	Plants      map[Cell]string
}

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#5F5F87")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

const emptyCell = ". "

// Render draws a boxed view of one state: a header naming the state, the
// planting grid, and a plant-count footer.
func Render(s Snapshot) string {
	header := headerStyle.Render(fmt.Sprintf("Quantum State: %s", s.Label))
	meta := footerStyle.Render(fmt.Sprintf("p=%.3f  age=%.1f", s.Probability, s.Age))

	var grid strings.Builder
	for y := 0; y < s.GridSize; y++ {
		for x := 0; x < s.GridSize; x++ {
			if glyph, ok := s.Plants[Cell{X: x, Y: y}]; ok {
				grid.WriteString(glyph)
			} else {
				grid.WriteString(emptyCell)
			}
		}
		if y < s.GridSize-1 {
			grid.WriteString("\n")
		}
	}

	footer := footerStyle.Render(fmt.Sprintf("%d plant(s)", len(s.Plants)))

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		meta,
		"",
		grid.String(),
		"",
		footer,
	)
	return frameStyle.Render(content)
}
