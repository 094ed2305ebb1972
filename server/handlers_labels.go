package server

import (
	"net/http"

	"github.com/existflow/catalyst/internal/model"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleCreateLabel(c echo.Context) error {
	var in model.LabelInput
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, err)
	}

	label, err := trackerFrom(c).CreateLabel(c.Request().Context(), in)
	if err != nil {
		return fail(c, err, "Label", "creation")
	}
	return c.JSON(http.StatusCreated, label)
}

func (s *Server) handleListLabels(c echo.Context) error {
	labels, err := trackerFrom(c).ListLabels(c.Request().Context(), c.QueryParam("project_id"))
	if err != nil {
		return fail(c, err, "Label", "listing")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"labels": labels,
		"total":  len(labels),
	})
}

func (s *Server) handleGetLabel(c echo.Context) error {
	label, err := trackerFrom(c).GetLabel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err, "Label", "retrieval")
	}
	return c.JSON(http.StatusOK, label)
}

func (s *Server) handleUpdateLabel(c echo.Context) error {
	var patch model.LabelPatch
	if err := bindBody(c, &patch); err != nil {
		return badRequest(c, err)
	}

	label, err := trackerFrom(c).UpdateLabel(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return fail(c, err, "Label", "update")
	}
	return c.JSON(http.StatusOK, label)
}

func (s *Server) handleDeleteLabel(c echo.Context) error {
	id := c.Param("id")
	ok, err := trackerFrom(c).DeleteLabel(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "Label", "deletion")
	}
	if !ok {
		return notFoundResponse(c, "Label")
	}
	return deleted(c, "Label", id)
}
