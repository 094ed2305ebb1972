package server

import (
	"net/http"

	"github.com/existflow/catalyst/internal/model"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleCreateModule(c echo.Context) error {
	var in model.ModuleInput
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, err)
	}

	mod, err := trackerFrom(c).CreateModule(c.Request().Context(), in)
	if err != nil {
		return fail(c, err, "Module", "creation")
	}
	return c.JSON(http.StatusCreated, mod)
}

func (s *Server) handleListModules(c echo.Context) error {
	modules, err := trackerFrom(c).ListModules(c.Request().Context(), c.QueryParam("project_id"))
	if err != nil {
		return fail(c, err, "Module", "listing")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"modules": modules,
		"total":   len(modules),
	})
}

func (s *Server) handleGetModule(c echo.Context) error {
	mod, err := trackerFrom(c).GetModule(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err, "Module", "retrieval")
	}
	return c.JSON(http.StatusOK, mod)
}

func (s *Server) handleUpdateModule(c echo.Context) error {
	var patch model.ModulePatch
	if err := bindBody(c, &patch); err != nil {
		return badRequest(c, err)
	}

	mod, err := trackerFrom(c).UpdateModule(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return fail(c, err, "Module", "update")
	}
	return c.JSON(http.StatusOK, mod)
}

func (s *Server) handleDeleteModule(c echo.Context) error {
	id := c.Param("id")
	ok, err := trackerFrom(c).DeleteModule(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "Module", "deletion")
	}
	if !ok {
		return notFoundResponse(c, "Module")
	}
	return deleted(c, "Module", id)
}
