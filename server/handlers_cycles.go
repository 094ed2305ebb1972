package server

import (
	"net/http"

	"github.com/existflow/catalyst/internal/model"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleCreateCycle(c echo.Context) error {
	var in model.CycleInput
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, err)
	}

	cycle, err := trackerFrom(c).CreateCycle(c.Request().Context(), in)
	if err != nil {
		return fail(c, err, "Cycle", "creation")
	}
	return c.JSON(http.StatusCreated, cycle)
}

func (s *Server) handleListCycles(c echo.Context) error {
	cycles, err := trackerFrom(c).ListCycles(c.Request().Context(), c.QueryParam("project_id"))
	if err != nil {
		return fail(c, err, "Cycle", "listing")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"cycles": cycles,
		"total":  len(cycles),
	})
}

func (s *Server) handleGetCycle(c echo.Context) error {
	cycle, err := trackerFrom(c).GetCycle(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err, "Cycle", "retrieval")
	}
	return c.JSON(http.StatusOK, cycle)
}

func (s *Server) handleUpdateCycle(c echo.Context) error {
	var patch model.CyclePatch
	if err := bindBody(c, &patch); err != nil {
		return badRequest(c, err)
	}

	cycle, err := trackerFrom(c).UpdateCycle(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return fail(c, err, "Cycle", "update")
	}
	return c.JSON(http.StatusOK, cycle)
}

func (s *Server) handleDeleteCycle(c echo.Context) error {
	id := c.Param("id")
	ok, err := trackerFrom(c).DeleteCycle(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "Cycle", "deletion")
	}
	if !ok {
		return notFoundResponse(c, "Cycle")
	}
	return deleted(c, "Cycle", id)
}
