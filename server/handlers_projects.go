package server

import (
	"net/http"

	"github.com/existflow/catalyst/internal/model"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleCreateProject(c echo.Context) error {
	var in model.ProjectInput
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, err)
	}

	project, err := trackerFrom(c).CreateProject(c.Request().Context(), in)
	if err != nil {
		return fail(c, err, "Project", "creation")
	}
	return c.JSON(http.StatusCreated, project)
}

func (s *Server) handleListProjects(c echo.Context) error {
	projects, err := trackerFrom(c).ListProjects(c.Request().Context())
	if err != nil {
		return fail(c, err, "Project", "listing")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"projects": projects,
		"total":    len(projects),
	})
}

func (s *Server) handleGetProject(c echo.Context) error {
	project, err := trackerFrom(c).GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err, "Project", "retrieval")
	}
	return c.JSON(http.StatusOK, project)
}

func (s *Server) handleUpdateProject(c echo.Context) error {
	var patch model.ProjectPatch
	if err := bindBody(c, &patch); err != nil {
		return badRequest(c, err)
	}

	project, err := trackerFrom(c).UpdateProject(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return fail(c, err, "Project", "update")
	}
	return c.JSON(http.StatusOK, project)
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	id := c.Param("id")
	ok, err := trackerFrom(c).DeleteProject(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "Project", "deletion")
	}
	if !ok {
		return notFoundResponse(c, "Project")
	}
	return deleted(c, "Project", id)
}
