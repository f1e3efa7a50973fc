package tui

import "github.com/charmbracelet/lipgloss"

// Style groups the lipgloss styles used by the chat window.
type Style struct {
	Title          lipgloss.Style
	UserLabel      lipgloss.Style
	CompanionLabel lipgloss.Style
	Status         lipgloss.Style
	Error          lipgloss.Style
	Help           lipgloss.Style
	SearchDate     lipgloss.Style
	Divider        lipgloss.Style
}

func DefaultStyles() *Style {
	return &Style{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{
			Light: "#B35900", Dark: "#FFA94D",
		}),
		UserLabel: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{
			Light: "#0055AA", Dark: "#6BB8FF",
		}),
		CompanionLabel: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{
			Light: "#B35900", Dark: "#FFA94D",
		}),
		Status: lipgloss.NewStyle().Faint(true),
		Error: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
			Light: "#AA0000", Dark: "#FF6B6B",
		}),
		Help:       lipgloss.NewStyle().Faint(true),
		SearchDate: lipgloss.NewStyle().Faint(true),
		Divider:    lipgloss.NewStyle().Faint(true),
	}
}
