package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/catalyst/internal/model"
)

// Color palette
var (
	// Priority colors
	PriorityUrgent = lipgloss.Color("#FF6B6B") // Red
	PriorityHigh   = lipgloss.Color("#FFB347") // Orange
	PriorityMedium = lipgloss.Color("#FFE66D") // Yellow
	PriorityLow    = lipgloss.Color("#4ECDC4") // Blue

	// Status colors
	Completed  = lipgloss.Color("#95E1A3") // Green
	InProgress = lipgloss.Color("#4ECDC4")
	Blocked    = lipgloss.Color("#FF6B6B")

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	RuleStyle = lipgloss.NewStyle().
			Foreground(Border)

	SidebarStyle = lipgloss.NewStyle().
			Width(20).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Border).
			Padding(1, 1)

	TicketListStyle = lipgloss.NewStyle().
			Padding(1, 2)

	ProjectItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	ProjectItemSelectedStyle = lipgloss.NewStyle().
					Padding(0, 1).
					Background(Surface).
					Bold(true)

	TicketItemStyle = lipgloss.NewStyle()

	TicketItemSelectedStyle = lipgloss.NewStyle().
				Background(Surface).
				Bold(true)

	TicketDoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true)

	DetailStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(Border).
			PaddingLeft(1)

	// Status badges
	StatusDoneStyle       = lipgloss.NewStyle().Foreground(Completed)
	StatusInProgressStyle = lipgloss.NewStyle().Foreground(InProgress)
	StatusBlockedStyle    = lipgloss.NewStyle().Foreground(Blocked).Bold(true)

	// Priority badges
	PriorityUrgentStyle = lipgloss.NewStyle().Foreground(PriorityUrgent).Bold(true)
	PriorityHighStyle   = lipgloss.NewStyle().Foreground(PriorityHigh).Bold(true)
	PriorityMediumStyle = lipgloss.NewStyle().Foreground(PriorityMedium)
	PriorityLowStyle    = lipgloss.NewStyle().Foreground(PriorityLow)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// FormatPriority returns a colored priority badge; none renders empty
func FormatPriority(p model.Priority) string {
	switch p {
	case model.PriorityUrgent:
		return PriorityUrgentStyle.Render("▲ urgent")
	case model.PriorityHigh:
		return PriorityHighStyle.Render("▲ high")
	case model.PriorityMedium:
		return PriorityMediumStyle.Render("  medium")
	case model.PriorityLow:
		return PriorityLowStyle.Render("  low")
	default:
		return ""
	}
}

// FormatStatus returns the status checkbox
func FormatStatus(s model.TicketStatus) string {
	switch s {
	case model.StatusDone:
		return StatusDoneStyle.Render("[x]")
	case model.StatusCancelled:
		return HelpStyle.Render("[-]")
	case model.StatusInProgress:
		return StatusInProgressStyle.Render("[~]")
	case model.StatusBlocked:
		return StatusBlockedStyle.Render("[!]")
	default:
		return "[ ]"
	}
}
