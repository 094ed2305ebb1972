package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/existflow/catalyst/internal/logger"
	"github.com/existflow/catalyst/internal/tracker"
	"github.com/labstack/echo/v4"
)

const trackerKey = "tracker"

// requestLogger logs every request once it has been handled
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		res := c.Response()
		logger.Info("HTTP Request",
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("status", res.Status),
			logger.F("size", res.Size),
			logger.F("duration", time.Since(start)),
			logger.F("request_id", res.Header().Get(echo.HeaderXRequestID)))

		return nil
	}
}

// httpErrorHandler renders errors that reach echo, such as unknown routes
// and recovered panics, in the same {"detail": ...} shape as the handlers
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	} else {
		logger.Error("Unhandled error", logger.F("uri", c.Request().RequestURI), logger.F("error", err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, detail(msg))
	}
	if err != nil {
		logger.Warn("Failed to write error response", logger.F("error", err))
	}
}

// sessionMiddleware acquires a store connection for the request and
// releases it once the handler returns
func (s *Server) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := s.db.Acquire(c.Request().Context())
		if err != nil {
			logger.Error("Store unavailable", logger.F("error", err))
			return c.JSON(http.StatusInternalServerError, detail("Store unavailable: "+err.Error()))
		}
		defer func() {
			if err := session.Close(); err != nil {
				logger.Warn("Failed to release store connection", logger.F("error", err))
			}
		}()

		c.Set(trackerKey, tracker.New(session.Queries))
		return next(c)
	}
}

func trackerFrom(c echo.Context) *tracker.Tracker {
	return c.Get(trackerKey).(*tracker.Tracker)
}

func detail(msg string) map[string]string {
	return map[string]string{"detail": msg}
}

// bindBody decodes the JSON request body into v
func bindBody(c echo.Context, v interface{}) error {
	return (&echo.DefaultBinder{}).BindBody(c, v)
}

func badRequest(c echo.Context, err error) error {
	code := http.StatusBadRequest
	msg := err.Error()

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
		if he.Internal != nil {
			msg = fmt.Sprintf("%s: %v", msg, he.Internal)
		}
	}
	return c.JSON(code, detail(msg))
}

// fail maps a tracker error onto the response. kind names the entity
// ("Ticket") and action the failed step ("creation").
func fail(c echo.Context, err error, kind, action string) error {
	switch {
	case errors.Is(err, tracker.ErrNotFound):
		return c.JSON(http.StatusNotFound, detail(kind+" not found"))
	case errors.Is(err, tracker.ErrInvalid):
		return c.JSON(http.StatusBadRequest, detail(err.Error()))
	}

	logger.Error(kind+" "+action+" failed",
		logger.F("uri", c.Request().RequestURI),
		logger.F("error", err))
	return c.JSON(http.StatusInternalServerError, detail(fmt.Sprintf("%s %s failed: %v", kind, action, err)))
}

func notFoundResponse(c echo.Context, kind string) error {
	return c.JSON(http.StatusNotFound, detail(kind+" not found"))
}

func deleted(c echo.Context, kind, id string) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("%s %s deleted successfully", kind, id),
	})
}
