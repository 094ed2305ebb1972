package tracker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/existflow/catalyst/internal/database"
	"github.com/existflow/catalyst/internal/model"
)

// CreateTicket stores a ticket with its labels and returns its projection
func (t *Tracker) CreateTicket(ctx context.Context, in model.TicketInput) (*model.TicketView, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ticket := in.Ticket()
	ticket.ID = t.newID()
	ticket.CreatedAt = t.now()
	ticket.UpdatedAt = ticket.CreatedAt

	if err := t.checkParent(ctx, ticket.ID, ticket.ParentTicketID); err != nil {
		return nil, err
	}

	err := t.q.InTx(ctx, func(q *database.Queries) error {
		if err := q.CreateTicket(ctx, &ticket); err != nil {
			return err
		}
		return q.SetTicketLabels(ctx, ticket.ID, ticket.LabelIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	v := t.ProjectTicket(ctx, ticket)
	return &v, nil
}

// ListTickets returns every ticket, newest first, optionally only those of
// one project. Only a failed store query is an error; a ticket whose
// relations cannot be resolved is still listed.
func (t *Tracker) ListTickets(ctx context.Context, projectID string) (model.TicketList, error) {
	tickets, err := t.q.ListTickets(ctx, projectID)
	if err != nil {
		return model.TicketList{}, fmt.Errorf("failed to fetch tickets: %w", err)
	}
	return t.ProjectTickets(ctx, tickets), nil
}

func (t *Tracker) getTicket(ctx context.Context, id string) (*model.Ticket, error) {
	ticket, err := t.q.GetTicket(ctx, id)
	if err != nil {
		return nil, notFound("ticket", err)
	}
	return ticket, nil
}

func (t *Tracker) GetTicket(ctx context.Context, id string) (*model.TicketView, error) {
	ticket, err := t.getTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	v := t.ProjectTicket(ctx, *ticket)
	return &v, nil
}

// UpdateTicket applies the fields present in patch. label_ids replaces the
// whole label set.
func (t *Tracker) UpdateTicket(ctx context.Context, id string, patch model.TicketPatch) (*model.TicketView, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	ticket, err := t.getTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	if !patch.Empty() {
		patch.ApplyTo(ticket)
		if ticket.StartDate != nil && ticket.EndDate != nil && ticket.EndDate.Before(ticket.StartDate.Time) {
			return nil, fmt.Errorf("%w: end_date %s is before start_date %s", ErrInvalid, ticket.EndDate, ticket.StartDate)
		}
		if patch.ParentTicketID.Set {
			if err := t.checkParent(ctx, ticket.ID, ticket.ParentTicketID); err != nil {
				return nil, err
			}
		}
		ticket.UpdatedAt = t.now()

		var n int64
		err := t.q.InTx(ctx, func(q *database.Queries) error {
			var err error
			if n, err = q.UpdateTicket(ctx, ticket); err != nil || n == 0 {
				return err
			}
			if patch.LabelIDs.Set {
				return q.SetTicketLabels(ctx, ticket.ID, ticket.LabelIDs)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to update ticket: %w", err)
		}
		if n == 0 {
			return nil, fmt.Errorf("ticket %w", ErrNotFound)
		}
	}

	v := t.ProjectTicket(ctx, *ticket)
	return &v, nil
}

// DeleteTicket removes the ticket and its label links. Subtasks keep their
// parent reference, which then projects as null.
func (t *Tracker) DeleteTicket(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := t.q.InTx(ctx, func(q *database.Queries) error {
		n, err := q.DeleteTicket(ctx, id)
		deleted = n > 0
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete ticket: %w", err)
	}
	return deleted, nil
}

// checkParent rejects a parent that does not exist, is the ticket itself,
// or has the ticket among its own ancestors.
func (t *Tracker) checkParent(ctx context.Context, ticketID string, parentID *string) error {
	if parentID == nil {
		return nil
	}
	if *parentID == ticketID {
		return fmt.Errorf("%w: a ticket cannot be its own parent", ErrInvalid)
	}

	next, err := t.q.GetTicketParentID(ctx, *parentID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: parent ticket %s does not exist", ErrInvalid, *parentID)
	}
	if err != nil {
		return fmt.Errorf("failed to load parent ticket: %w", err)
	}

	seen := map[string]bool{*parentID: true}
	for next != nil && *next != "" {
		if *next == ticketID {
			return fmt.Errorf("%w: parent ticket %s would create a cycle", ErrInvalid, *parentID)
		}
		if seen[*next] {
			// an existing loop above us that does not include this ticket
			return nil
		}
		seen[*next] = true

		cur := *next
		next, err = t.q.GetTicketParentID(ctx, cur)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load ticket %s: %w", cur, err)
		}
	}
	return nil
}
