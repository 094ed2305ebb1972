package server

import (
	"net/http"

	"github.com/existflow/catalyst/internal/model"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleCreateUser(c echo.Context) error {
	var in model.UserInput
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, err)
	}

	user, err := trackerFrom(c).CreateUser(c.Request().Context(), in)
	if err != nil {
		return fail(c, err, "User", "creation")
	}
	return c.JSON(http.StatusCreated, user)
}

func (s *Server) handleListUsers(c echo.Context) error {
	users, err := trackerFrom(c).ListUsers(c.Request().Context())
	if err != nil {
		return fail(c, err, "User", "listing")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"users": users,
		"total": len(users),
	})
}

func (s *Server) handleGetUser(c echo.Context) error {
	user, err := trackerFrom(c).GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err, "User", "retrieval")
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) handleUpdateUser(c echo.Context) error {
	var patch model.UserPatch
	if err := bindBody(c, &patch); err != nil {
		return badRequest(c, err)
	}

	user, err := trackerFrom(c).UpdateUser(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return fail(c, err, "User", "update")
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) handleDeleteUser(c echo.Context) error {
	id := c.Param("id")
	ok, err := trackerFrom(c).DeleteUser(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "User", "deletion")
	}
	if !ok {
		return notFoundResponse(c, "User")
	}
	return deleted(c, "User", id)
}
