package server

import (
	"net/http"

	"github.com/existflow/catalyst/internal/model"
	"github.com/labstack/echo/v4"
)

// Ticket responses are always projections: the stored ticket plus minimal
// views of its project, cycle, module, parent, subtasks, labels and assignee.

func (s *Server) handleCreateTicket(c echo.Context) error {
	var in model.TicketInput
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, err)
	}

	view, err := trackerFrom(c).CreateTicket(c.Request().Context(), in)
	if err != nil {
		return fail(c, err, "Ticket", "creation")
	}
	return c.JSON(http.StatusCreated, view)
}

func (s *Server) handleListTickets(c echo.Context) error {
	list, err := trackerFrom(c).ListTickets(c.Request().Context(), c.QueryParam("project_id"))
	if err != nil {
		return fail(c, err, "Ticket", "listing")
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleGetTicket(c echo.Context) error {
	view, err := trackerFrom(c).GetTicket(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err, "Ticket", "retrieval")
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) handleUpdateTicket(c echo.Context) error {
	var patch model.TicketPatch
	if err := bindBody(c, &patch); err != nil {
		return badRequest(c, err)
	}

	view, err := trackerFrom(c).UpdateTicket(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return fail(c, err, "Ticket", "update")
	}
	return c.JSON(http.StatusOK, view)
}

// handleDeleteTicket removes the ticket and its label links. Subtasks keep
// their parent reference.
func (s *Server) handleDeleteTicket(c echo.Context) error {
	id := c.Param("id")
	ok, err := trackerFrom(c).DeleteTicket(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "Ticket", "deletion")
	}
	if !ok {
		return notFoundResponse(c, "Ticket")
	}
	return deleted(c, "Ticket", id)
}
