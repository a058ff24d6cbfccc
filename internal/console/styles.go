package console

import "github.com/charmbracelet/lipgloss"

var (
	ColorCyan  = lipgloss.Color("12")
	ColorRed   = lipgloss.Color("9")
	ColorGray  = lipgloss.Color("8")
	ColorGreen = lipgloss.Color("10")

	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCyan).MarginBottom(1)
	TitleStyle  = lipgloss.NewStyle().Bold(true)
	ErrorStyle  = lipgloss.NewStyle().Foreground(ColorRed)
	MetaStyle   = lipgloss.NewStyle().Foreground(ColorGray)

	ContextPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray).
			Padding(0, 1)

	AnswerPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGreen).
			Padding(0, 1)
)
