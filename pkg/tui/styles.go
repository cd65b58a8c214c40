package tui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	Hint        lipgloss.Style
	Error       lipgloss.Style
	Advisory    lipgloss.Style
	Success     lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	LineNumber  lipgloss.Style
	Code        lipgloss.Style
	Panel       lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		Label:       lipgloss.NewStyle().Bold(true),
		Hint:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Advisory:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		ActiveTab:   lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1),
		InactiveTab: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		LineNumber:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Code:        lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		Panel:       lipgloss.NewStyle().MarginTop(1),
	}
}
