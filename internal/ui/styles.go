package ui

import "github.com/charmbracelet/lipgloss"

const chatChromeHeight = 8

var (
	colorAccent = lipgloss.Color("205")
	colorMuted  = lipgloss.Color("241")
	colorGold   = lipgloss.Color("178")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	focusedPaneStyle = paneStyle.
				BorderForeground(colorAccent)

	selectedStyle = lipgloss.NewStyle().Foreground(colorGold).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)

	userMsgStyle      = lipgloss.NewStyle().Bold(true)
	assistantMsgStyle = lipgloss.NewStyle()
	mentionStyle      = lipgloss.NewStyle().Foreground(colorGold).Underline(true)

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(colorGold).
			Padding(0, 1)

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().Faint(true)
)
