package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sidebar := m.renderSidebar()
	ticketList := m.renderTicketList()
	statusBar := m.renderStatusBar()

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, ticketList)

	if m.mode == ModeAddTicket || m.mode == ModeAddProject {
		mainContent = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			m.renderModal(),
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	if m.mode == ModeHelp {
		mainContent = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, statusBar)
}

func (m Model) renderSidebar() string {
	sidebarWidth := 22
	var s string

	s += HeaderStyle.UnsetPadding().Render("Catalyst") + "\n"
	s += RuleStyle.Render("─────────────────") + "\n\n"

	entries := []string{"All"}
	for _, p := range m.projects {
		entries = append(entries, fmt.Sprintf("%-5s %s", truncate(p.Identifier, 5), truncate(p.Name, 10)))
	}

	for i, entry := range entries {
		cursor := "  "
		style := ProjectItemStyle
		if i == m.projCursor {
			cursor = "❯ "
			if m.pane == PaneSidebar {
				style = ProjectItemSelectedStyle
			}
		}
		s += style.Render(cursor+entry) + "\n"
	}

	s += "\n" + RuleStyle.Render("─────────────────") + "\n"
	s += HelpStyle.Render("p new project")

	return SidebarStyle.Width(sidebarWidth).Height(m.height - 2).Render(s)
}

func (m Model) renderTicketList() string {
	width := m.width - 24
	var s string

	title := "All tickets"
	if p := m.currentProject(); p != nil {
		title = p.Name
	}

	pending := 0
	for _, t := range m.tickets {
		if !isClosed(t.Status) {
			pending++
		}
	}
	header := fmt.Sprintf("%s (%d pending)", title, pending)
	s += HeaderStyle.UnsetPadding().Render(header) + "\n"
	s += RuleStyle.Render(strings.Repeat("─", max(width-4, 1))) + "\n\n"

	if len(m.tickets) == 0 {
		s += HelpStyle.Render("  No tickets. Press 'a' to add one.")
	}

	for i, t := range m.tickets {
		cursor := "  "
		style := TicketItemStyle
		if i == m.ticketCursor && m.pane == PaneTicketList {
			cursor = "❯ "
			style = TicketItemSelectedStyle
		}
		if isClosed(t.Status) {
			style = TicketDoneStyle
		}

		titleWidth := max(width-36, 10)
		check := style.Render(cursor) + FormatStatus(t.Status)
		desc := style.Render(fmt.Sprintf(" %-*s ", titleWidth, truncate(t.Title, titleWidth)))

		assignee := ""
		if t.AssigneeUser != nil {
			assignee = "@" + truncate(t.AssigneeUser.Name, 10)
		} else if t.Assignee != nil {
			assignee = "@" + truncate(*t.Assignee, 10)
		}

		s += check + desc + HelpStyle.Render(fmt.Sprintf("%-12s", assignee)) + FormatPriority(t.Priority) + "\n"
	}

	if t := m.currentTicket(); t != nil && m.pane == PaneTicketList {
		s += "\n" + m.renderDetail() + "\n"
	}

	return TicketListStyle.Width(width).Height(m.height - 2).Render(s)
}

// renderDetail shows the relations of the selected ticket
func (m Model) renderDetail() string {
	t := m.currentTicket()
	var lines []string

	if t.Cycle != nil {
		lines = append(lines, fmt.Sprintf("cycle    %s (%s → %s)", t.Cycle.Name, t.Cycle.StartDate, t.Cycle.EndDate))
	}
	if t.Module != nil {
		lines = append(lines, "module   "+t.Module.Name)
	}
	if t.Parent != nil {
		lines = append(lines, fmt.Sprintf("parent   %s [%s]", t.Parent.Title, t.Parent.Status))
	}
	if len(t.Labels) > 0 {
		names := make([]string, 0, len(t.Labels))
		for _, l := range t.Labels {
			names = append(names, l.Name)
		}
		lines = append(lines, "labels   "+strings.Join(names, ", "))
	}
	for _, sub := range t.Subtasks {
		lines = append(lines, fmt.Sprintf("subtask  %s [%s]", sub.Title, sub.Status))
	}
	if t.Summary != nil && *t.Summary != "" {
		lines = append(lines, "", *t.Summary)
	}

	if len(lines) == 0 {
		return ""
	}
	return DetailStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatusBar() string {
	help := "a:add  x:done  s:status  +:priority  d:del  r:refresh  ?:help  q:quit"
	if m.message != "" {
		help = m.message
	}
	return StatusBarStyle.Width(m.width).Render(help)
}

func (m Model) renderModal() string {
	title := "Add Ticket"
	if m.mode == ModeAddProject {
		title = "New Project"
	} else if proj := m.currentProject(); proj != nil {
		title = fmt.Sprintf("Add Ticket to: %s", proj.Name)
	}

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n"
	content += m.input.View() + "\n\n"
	content += HelpStyle.Render("Enter:save  Esc:cancel")

	return ModalStyle.Render(content)
}

func (m Model) renderHelp() string {
	help := `
╭─── Keyboard Shortcuts ───╮
│                          │
│  Navigation              │
│  ──────────              │
│  j/↓    Move down        │
│  k/↑    Move up          │
│  h/l    Switch pane      │
│  Tab    Switch pane      │
│                          │
│  Actions                 │
│  ───────                 │
│  a       Add ticket      │
│  x       Toggle done     │
│  s       Next status     │
│  +       Raise priority  │
│  d       Delete          │
│  p       New project     │
│  r       Refresh         │
│                          │
│  Other                   │
│  ─────                   │
│  ?       Toggle help     │
│  q       Quit            │
│                          │
╰──────────────────────────╯

     Press any key to close
`
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, help)
}
