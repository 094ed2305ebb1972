// Package tracker implements the entity services and the ticket projection.
//
// A Tracker is cheap to build and is normally created per request around the
// request's store session.
package tracker

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/existflow/catalyst/internal/database"
	"github.com/existflow/catalyst/internal/model"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by Get and Update when the id is absent
	ErrNotFound = errors.New("not found")

	// ErrInvalid wraps input that fails validation
	ErrInvalid = model.ErrInvalid
)

// Tracker runs entity operations against one store handle
type Tracker struct {
	q     *database.Queries
	now   func() time.Time
	newID func() string
}

func New(q *database.Queries) *Tracker {
	return &Tracker{
		q:     q,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
}

// notFound maps a missing row to ErrNotFound and wraps anything else
func notFound(kind string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %w", kind, ErrNotFound)
	}
	return fmt.Errorf("failed to load %s: %w", kind, err)
}
