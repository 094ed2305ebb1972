package server

import (
	"context"
	"net/http"

	"github.com/existflow/catalyst/internal/db"
	"github.com/existflow/catalyst/internal/diagram"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server is the tracker HTTP API
type Server struct {
	db        *db.DB
	generator diagram.Generator
	echo      *echo.Echo
}

// New wires the routes. The caller owns database and closes it.
func New(database *db.DB, generator diagram.Generator, corsOrigins []string) *Server {
	s := &Server{
		db:        database,
		generator: generator,
	}
	s.setupEcho(corsOrigins)
	return s
}

func (s *Server) setupEcho(corsOrigins []string) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpErrorHandler

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     corsOrigins,
		AllowCredentials: true,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
	}))

	e.GET("/health", s.handleHealth)

	// Entity routes run with a dedicated store connection
	api := e.Group("", s.sessionMiddleware)

	projects := api.Group("/projects")
	projects.POST("", s.handleCreateProject)
	projects.GET("", s.handleListProjects)
	projects.GET("/:id", s.handleGetProject)
	projects.PUT("/:id", s.handleUpdateProject)
	projects.DELETE("/:id", s.handleDeleteProject)

	labels := api.Group("/labels")
	labels.POST("", s.handleCreateLabel)
	labels.GET("", s.handleListLabels)
	labels.GET("/:id", s.handleGetLabel)
	labels.PUT("/:id", s.handleUpdateLabel)
	labels.DELETE("/:id", s.handleDeleteLabel)

	cycles := api.Group("/cycles")
	cycles.POST("", s.handleCreateCycle)
	cycles.GET("", s.handleListCycles)
	cycles.GET("/:id", s.handleGetCycle)
	cycles.PUT("/:id", s.handleUpdateCycle)
	cycles.DELETE("/:id", s.handleDeleteCycle)

	modules := api.Group("/modules")
	modules.POST("", s.handleCreateModule)
	modules.GET("", s.handleListModules)
	modules.GET("/:id", s.handleGetModule)
	modules.PUT("/:id", s.handleUpdateModule)
	modules.DELETE("/:id", s.handleDeleteModule)

	tickets := api.Group("/tickets")
	tickets.POST("", s.handleCreateTicket)
	tickets.GET("", s.handleListTickets)
	tickets.GET("/:id", s.handleGetTicket)
	tickets.PUT("/:id", s.handleUpdateTicket)
	tickets.DELETE("/:id", s.handleDeleteTicket)

	users := api.Group("/users")
	users.POST("", s.handleCreateUser)
	users.GET("", s.handleListUsers)
	users.GET("/:id", s.handleGetUser)
	users.PUT("/:id", s.handleUpdateUser)
	users.DELETE("/:id", s.handleDeleteUser)

	e.POST("/mermaid/generate", s.handleGenerateMermaid)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	if err := s.db.PingContext(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
