package tracker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/existflow/catalyst/internal/logger"
	"github.com/existflow/catalyst/internal/model"
)

// ProjectTicket inlines the related records of a ticket. It never fails:
// each relation is resolved on its own, and one that is unset, dangling or
// unreadable comes out as null (or is left out of Labels and Subtasks)
// without affecting the others.
func (t *Tracker) ProjectTicket(ctx context.Context, ticket model.Ticket) model.TicketView {
	v := model.TicketView{
		Ticket:   ticket,
		Labels:   []model.LabelRef{},
		Subtasks: []model.TicketRef{},
	}

	if p := lookup(ctx, ticket.ID, "project", ticket.ProjectID, t.q.GetProject); p != nil {
		v.Project = p.Ref()
	}
	if c := lookup(ctx, ticket.ID, "cycle", ticket.CycleID, t.q.GetCycle); c != nil {
		v.Cycle = c.Ref()
	}
	if m := lookup(ctx, ticket.ID, "module", ticket.ModuleID, t.q.GetModule); m != nil {
		v.Module = m.Ref()
	}
	if parent := lookup(ctx, ticket.ID, "parent", ticket.ParentTicketID, t.q.GetTicket); parent != nil {
		ref := parent.Ref()
		v.Parent = &ref
	}

	for i := range ticket.LabelIDs {
		if l := lookup(ctx, ticket.ID, "label", &ticket.LabelIDs[i], t.q.GetLabel); l != nil {
			v.Labels = append(v.Labels, l.Ref())
		}
	}

	subtasks, err := guard(func() ([]model.Ticket, error) { return t.q.ListSubtasks(ctx, ticket.ID) })
	if err != nil {
		logger.Warn("Ticket subtasks unavailable",
			logger.F("ticket_id", ticket.ID),
			logger.F("error", err))
	}
	for i := range subtasks {
		v.Subtasks = append(v.Subtasks, subtasks[i].Ref())
	}

	// assignee_id wins over the free-text assignee
	if u := lookup(ctx, ticket.ID, "assignee_user", ticket.AssigneeID, t.q.GetUser); u != nil {
		v.AssigneeUser = u.Ref()
	}

	return v
}

// ProjectTickets projects tickets in the order given
func (t *Tracker) ProjectTickets(ctx context.Context, tickets []model.Ticket) model.TicketList {
	views := make([]model.TicketView, 0, len(tickets))
	for _, ticket := range tickets {
		views = append(views, t.ProjectTicket(ctx, ticket))
	}
	return model.TicketList{Tickets: views, Total: len(views)}
}

// lookup resolves one relation reference. A nil or empty id, a missing row
// and a failed read all yield nil.
func lookup[R any](ctx context.Context, ticketID, relation string, id *string, get func(context.Context, string) (*R, error)) *R {
	if id == nil || *id == "" {
		return nil
	}

	r, err := guard(func() (*R, error) { return get(ctx, *id) })
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Debug("Dangling ticket reference",
				logger.F("ticket_id", ticketID),
				logger.F("relation", relation),
				logger.F("ref", *id))
		} else {
			logger.Warn("Ticket relation unavailable",
				logger.F("ticket_id", ticketID),
				logger.F("relation", relation),
				logger.F("ref", *id),
				logger.F("error", err))
		}
		return nil
	}
	return r
}

// guard turns a panic inside a store read into an error
func guard[T any](fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result, err = zero, fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
