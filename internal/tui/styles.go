package tui

import "github.com/charmbracelet/lipgloss/v2"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	badgeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	mineStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	failedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	inputStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)

	toastStyles = map[string]lipgloss.Style{
		"success": lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		"error":   lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		"info":    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		"warning": lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
)
