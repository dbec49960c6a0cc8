package cli

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1).
			Width(columnWidth)

	columnTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("12"))
)

// stageColors tints each stage heading on the board.
var stageColors = map[string]lipgloss.Color{
	"Submitted":    lipgloss.Color("7"),
	"First Round":  lipgloss.Color("14"),
	"Second Round": lipgloss.Color("12"),
	"Third Round":  lipgloss.Color("13"),
	"Selected":     lipgloss.Color("10"),
	"Rejected":     lipgloss.Color("9"),
}
