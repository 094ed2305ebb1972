package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/catalyst/internal/logger"
	"github.com/existflow/catalyst/internal/model"
	"github.com/existflow/catalyst/internal/tracker"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneSidebar Pane = iota
	PaneTicketList
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTicket
	ModeAddProject
	ModeHelp
)

// Model is the ticket browser. The first sidebar entry lists tickets of
// every project.
type Model struct {
	ctx      context.Context
	tracker  *tracker.Tracker
	projects []model.Project
	tickets  []model.TicketView

	width        int
	height       int
	pane         Pane
	mode         Mode
	projCursor   int // 0 is "All"; i > 0 is projects[i-1]
	ticketCursor int

	input textinput.Model

	message string
}

// NewModel creates a browser over t
func NewModel(ctx context.Context, t *tracker.Tracker) Model {
	ti := textinput.New()
	ti.CharLimit = 255
	ti.Width = 50

	m := Model{
		ctx:     ctx,
		tracker: t,
		pane:    PaneSidebar,
		mode:    ModeNormal,
		input:   ti,
	}
	m.loadData()
	logger.Debug("TUI model initialized",
		logger.F("projects", len(m.projects)),
		logger.F("tickets", len(m.tickets)))
	return m
}

func (m *Model) loadData() {
	projects, err := m.tracker.ListProjects(m.ctx)
	if err != nil {
		m.message = "Error: " + err.Error()
		return
	}
	m.projects = projects
	if m.projCursor > len(m.projects) {
		m.projCursor = 0
	}

	projectID := ""
	if p := m.currentProject(); p != nil {
		projectID = p.ID
	}
	list, err := m.tracker.ListTickets(m.ctx, projectID)
	if err != nil {
		m.message = "Error: " + err.Error()
		return
	}
	m.tickets = list.Tickets
	if m.ticketCursor >= len(m.tickets) {
		m.ticketCursor = max(len(m.tickets)-1, 0)
	}
}

// currentProject is nil while "All" is selected
func (m *Model) currentProject() *model.Project {
	if m.projCursor > 0 && m.projCursor <= len(m.projects) {
		return &m.projects[m.projCursor-1]
	}
	return nil
}

func (m *Model) currentTicket() *model.TicketView {
	if m.ticketCursor < len(m.tickets) {
		return &m.tickets[m.ticketCursor]
	}
	return nil
}
