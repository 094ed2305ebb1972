package server

import (
	"net/http"
	"strings"

	"github.com/existflow/catalyst/internal/logger"
	"github.com/labstack/echo/v4"
)

type mermaidRequest struct {
	Prompt string `json:"prompt"`
}

type mermaidResponse struct {
	Mermaid string `json:"mermaid"`
}

func (s *Server) handleGenerateMermaid(c echo.Context) error {
	var req mermaidRequest
	if err := bindBody(c, &req); err != nil {
		return badRequest(c, err)
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return c.JSON(http.StatusBadRequest, detail("prompt is required"))
	}

	markup, err := s.generator.Generate(c.Request().Context(), req.Prompt)
	if err != nil {
		logger.Error("Mermaid generation failed", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, detail("Failed to generate Mermaid diagram: "+err.Error()))
	}

	return c.JSON(http.StatusOK, mermaidResponse{Mermaid: markup})
}
