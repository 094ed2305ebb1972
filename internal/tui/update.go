package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/catalyst/internal/logger"
	"github.com/existflow/catalyst/internal/model"
)

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeAddTicket, ModeAddProject:
			return m.updateInput(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		if m.pane == PaneSidebar {
			m.pane = PaneTicketList
		} else {
			m.pane = PaneSidebar
		}

	case key.Matches(msg, keys.Left):
		m.pane = PaneSidebar

	case key.Matches(msg, keys.Right):
		m.pane = PaneTicketList

	case key.Matches(msg, keys.Up):
		if m.pane == PaneSidebar {
			if m.projCursor > 0 {
				m.projCursor--
				m.ticketCursor = 0
				m.loadData()
			}
		} else if m.ticketCursor > 0 {
			m.ticketCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.pane == PaneSidebar {
			if m.projCursor < len(m.projects) {
				m.projCursor++
				m.ticketCursor = 0
				m.loadData()
			}
		} else if m.ticketCursor < len(m.tickets)-1 {
			m.ticketCursor++
		}

	case key.Matches(msg, keys.Add):
		m.mode = ModeAddTicket
		m.input.Placeholder = "Ticket title..."
		m.input.SetValue("")
		m.input.Focus()

	case key.Matches(msg, keys.Project):
		m.mode = ModeAddProject
		m.input.Placeholder = "Project name..."
		m.input.SetValue("")
		m.input.Focus()

	case key.Matches(msg, keys.Done):
		if t := m.currentTicket(); t != nil && m.pane == PaneTicketList {
			status := model.StatusDone
			if isClosed(t.Status) {
				status = model.StatusOpen
			}
			m.setStatus(t, status)
		}

	case key.Matches(msg, keys.Status):
		if t := m.currentTicket(); t != nil && m.pane == PaneTicketList {
			m.setStatus(t, nextStatus(t.Status))
		}

	case key.Matches(msg, keys.Priority):
		if t := m.currentTicket(); t != nil && m.pane == PaneTicketList {
			p := raisePriority(t.Priority)
			_, err := m.tracker.UpdateTicket(m.ctx, t.ID, model.TicketPatch{Priority: model.Some(p)})
			m.report(err, fmt.Sprintf("Priority set to %s", p))
			m.loadData()
		}

	case key.Matches(msg, keys.Delete):
		m.deleteSelected()

	case key.Matches(msg, keys.Refresh):
		m.loadData()
		m.message = "Refreshed"

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

// updateInput handles the add ticket and add project prompts
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, keys.Enter):
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = ModeNormal
		m.input.Blur()
		if value == "" {
			return m, nil
		}
		if mode == ModeAddProject {
			m.addProject(value)
		} else {
			m.addTicket(value)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) addTicket(title string) {
	in := model.TicketInput{Title: title}
	if p := m.currentProject(); p != nil {
		in.ProjectID = &p.ID
	}
	view, err := m.tracker.CreateTicket(m.ctx, in)
	if err == nil {
		logger.Info("Ticket created", logger.F("id", view.ID))
	}
	m.report(err, "Ticket added")
	m.loadData()
}

func (m *Model) addProject(name string) {
	p, err := m.tracker.CreateProject(m.ctx, model.ProjectInput{Name: name, Identifier: identifierFor(name)})
	if err == nil {
		logger.Info("Project created", logger.F("id", p.ID))
	}
	m.report(err, "Project added")
	m.loadData()
}

func (m *Model) setStatus(t *model.TicketView, status model.TicketStatus) {
	_, err := m.tracker.UpdateTicket(m.ctx, t.ID, model.TicketPatch{Status: model.Some(status)})
	m.report(err, fmt.Sprintf("%s → %s", truncate(t.Title, 30), status))
	m.loadData()
}

// deleteSelected deletes the ticket under the cursor, or the selected
// project when the sidebar is focused
func (m *Model) deleteSelected() {
	if m.pane == PaneSidebar {
		p := m.currentProject()
		if p == nil {
			return
		}
		_, err := m.tracker.DeleteProject(m.ctx, p.ID)
		m.report(err, "Project deleted")
		m.projCursor = 0
	} else {
		t := m.currentTicket()
		if t == nil {
			return
		}
		_, err := m.tracker.DeleteTicket(m.ctx, t.ID)
		m.report(err, "Ticket deleted")
	}
	m.loadData()
}

func (m *Model) report(err error, ok string) {
	if err != nil {
		logger.Warn("TUI action failed", logger.F("error", err))
		m.message = "Error: " + err.Error()
		return
	}
	m.message = ok
}
