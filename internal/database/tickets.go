package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/existflow/catalyst/internal/logger"
	"github.com/existflow/catalyst/internal/model"
)

const ticketColumns = `id, title, summary, start_date, end_date, assignee, assignee_id, status, priority,
	estimated_hours, project_id, cycle_id, module_id, parent_ticket_id, created_at, updated_at`

func scanTicket(s scanner) (*model.Ticket, error) {
	var t model.Ticket
	var summary, startDate, endDate, assignee, assigneeID sql.NullString
	var projectID, cycleID, moduleID, parentID sql.NullString
	var status, priority, createdAt, updatedAt string
	var hours sql.NullFloat64

	err := s.Scan(
		&t.ID, &t.Title, &summary, &startDate, &endDate, &assignee, &assigneeID, &status, &priority,
		&hours, &projectID, &cycleID, &moduleID, &parentID, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Summary = stringPtr(summary)
	t.Assignee = stringPtr(assignee)
	t.AssigneeID = stringPtr(assigneeID)
	t.Status = model.TicketStatus(status)
	t.Priority = model.Priority(priority)
	t.EstimatedHours = floatPtr(hours)
	t.ProjectID = stringPtr(projectID)
	t.CycleID = stringPtr(cycleID)
	t.ModuleID = stringPtr(moduleID)
	t.ParentTicketID = stringPtr(parentID)
	t.LabelIDs = []string{}

	// A malformed date or timestamp leaves that field empty rather than
	// losing the ticket
	if t.StartDate, err = datePtr(startDate); err != nil {
		fieldDropped(t.ID, "start_date", err)
	}
	if t.EndDate, err = datePtr(endDate); err != nil {
		fieldDropped(t.ID, "end_date", err)
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		fieldDropped(t.ID, "created_at", err)
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		fieldDropped(t.ID, "updated_at", err)
	}
	return &t, nil
}

func fieldDropped(ticketID, field string, err error) {
	logger.Warn("Ticket field unreadable",
		logger.F("ticket_id", ticketID),
		logger.F("field", field),
		logger.F("error", err))
}

func ticketArgs(t *model.Ticket) []interface{} {
	return []interface{}{
		t.Title, nullString(t.Summary), nullDate(t.StartDate), nullDate(t.EndDate),
		nullString(t.Assignee), nullString(t.AssigneeID), string(t.Status), string(t.Priority),
		nullFloat(t.EstimatedHours), nullString(t.ProjectID), nullString(t.CycleID),
		nullString(t.ModuleID), nullString(t.ParentTicketID),
	}
}

// CreateTicket inserts the ticket row. Label links are written separately
// with SetTicketLabels.
func (q *Queries) CreateTicket(ctx context.Context, t *model.Ticket) error {
	args := append([]interface{}{t.ID}, ticketArgs(t)...)
	args = append(args, formatTime(t.CreatedAt), formatTime(t.UpdatedAt))
	_, err := q.exec(ctx, `
		INSERT INTO tickets (`+ticketColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...,
	)
	return err
}

// GetTicket returns the ticket with its label ids loaded
func (q *Queries) GetTicket(ctx context.Context, id string) (*model.Ticket, error) {
	t, err := scanTicket(q.queryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	if t.LabelIDs, err = q.ListTicketLabelIDs(ctx, id); err != nil {
		return nil, err
	}
	return t, nil
}

// GetTicketParentID returns the parent reference alone, for walking the
// parent chain without loading whole tickets
func (q *Queries) GetTicketParentID(ctx context.Context, id string) (*string, error) {
	var parent sql.NullString
	if err := q.queryRow(ctx, `SELECT parent_ticket_id FROM tickets WHERE id = ?`, id).Scan(&parent); err != nil {
		return nil, err
	}
	return stringPtr(parent), nil
}

// ListTickets returns tickets newest first, optionally restricted to one
// project, with label ids loaded in a single extra query
func (q *Queries) ListTickets(ctx context.Context, projectID string) ([]model.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets`
	var args []interface{}
	if projectID != "" {
		query += ` WHERE project_id = ?`
		args = append(args, projectID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	tickets, err := q.listTickets(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := q.loadLabelIDs(ctx, tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// ListSubtasks returns the children of parentID, newest first
func (q *Queries) ListSubtasks(ctx context.Context, parentID string) ([]model.Ticket, error) {
	return q.listTickets(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE parent_ticket_id = ? ORDER BY created_at DESC, id DESC`,
		parentID,
	)
}

func (q *Queries) listTickets(ctx context.Context, query string, args ...interface{}) ([]model.Ticket, error) {
	rows, err := q.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// A row that cannot be scanned is skipped; only the query and the
	// cursor itself can fail the listing
	tickets := []model.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			logger.Warn("Skipping unreadable ticket row", logger.F("error", err))
			continue
		}
		tickets = append(tickets, *t)
	}
	return tickets, rows.Err()
}

// loadLabelIDs fills LabelIDs for a batch of tickets
func (q *Queries) loadLabelIDs(ctx context.Context, tickets []model.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	index := make(map[string]int, len(tickets))
	ids := make([]interface{}, len(tickets))
	for i, t := range tickets {
		index[t.ID] = i
		ids[i] = t.ID
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	rows, err := q.query(ctx, `
		SELECT ticket_id, label_id FROM ticket_labels
		WHERE ticket_id IN (`+placeholders+`)
		ORDER BY ticket_id, sort_order`,
		ids...,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ticketID, labelID string
		if err := rows.Scan(&ticketID, &labelID); err != nil {
			return err
		}
		if i, ok := index[ticketID]; ok {
			tickets[i].LabelIDs = append(tickets[i].LabelIDs, labelID)
		}
	}
	return rows.Err()
}

func (q *Queries) UpdateTicket(ctx context.Context, t *model.Ticket) (int64, error) {
	args := append(ticketArgs(t), formatTime(t.UpdatedAt), t.ID)
	return rowsAffected(q.exec(ctx, `
		UPDATE tickets SET
			title = ?, summary = ?, start_date = ?, end_date = ?, assignee = ?, assignee_id = ?,
			status = ?, priority = ?, estimated_hours = ?, project_id = ?, cycle_id = ?,
			module_id = ?, parent_ticket_id = ?, updated_at = ?
		WHERE id = ?`,
		args...,
	))
}

func (q *Queries) DeleteTicket(ctx context.Context, id string) (int64, error) {
	if _, err := q.exec(ctx, `DELETE FROM ticket_labels WHERE ticket_id = ?`, id); err != nil {
		return 0, err
	}
	return rowsAffected(q.exec(ctx, `DELETE FROM tickets WHERE id = ?`, id))
}

// ListTicketLabelIDs returns the label ids linked to a ticket in the order
// they were assigned
func (q *Queries) ListTicketLabelIDs(ctx context.Context, ticketID string) ([]string, error) {
	rows, err := q.query(ctx,
		`SELECT label_id FROM ticket_labels WHERE ticket_id = ? ORDER BY sort_order`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SetTicketLabels replaces the label links of a ticket
func (q *Queries) SetTicketLabels(ctx context.Context, ticketID string, labelIDs []string) error {
	if _, err := q.exec(ctx, `DELETE FROM ticket_labels WHERE ticket_id = ?`, ticketID); err != nil {
		return err
	}
	for i, labelID := range labelIDs {
		if _, err := q.exec(ctx,
			`INSERT INTO ticket_labels (ticket_id, label_id, sort_order) VALUES (?, ?, ?)`,
			ticketID, labelID, i,
		); err != nil {
			return err
		}
	}
	return nil
}

// UnlinkLabel removes a label from every ticket that carries it
func (q *Queries) UnlinkLabel(ctx context.Context, labelID string) error {
	_, err := q.exec(ctx, `DELETE FROM ticket_labels WHERE label_id = ?`, labelID)
	return err
}
