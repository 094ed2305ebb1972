package database

import (
	"context"

	"github.com/existflow/catalyst/internal/model"
)

const cycleColumns = `id, name, project_id, start_date, end_date, status, created_at, updated_at`

func scanCycle(s scanner) (*model.Cycle, error) {
	var c model.Cycle
	var start, end, status, createdAt, updatedAt string
	if err := s.Scan(&c.ID, &c.Name, &c.ProjectID, &start, &end, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if c.StartDate, err = model.ParseDate(start); err != nil {
		return nil, err
	}
	if c.EndDate, err = model.ParseDate(end); err != nil {
		return nil, err
	}
	c.Status = model.CycleStatus(status)
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (q *Queries) CreateCycle(ctx context.Context, c *model.Cycle) error {
	_, err := q.exec(ctx, `
		INSERT INTO cycles (`+cycleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.ProjectID, c.StartDate.String(), c.EndDate.String(), string(c.Status),
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	return err
}

func (q *Queries) GetCycle(ctx context.Context, id string) (*model.Cycle, error) {
	return scanCycle(q.queryRow(ctx, `SELECT `+cycleColumns+` FROM cycles WHERE id = ?`, id))
}

func (q *Queries) ListCycles(ctx context.Context, projectID string) ([]model.Cycle, error) {
	query := `SELECT ` + cycleColumns + ` FROM cycles`
	var args []interface{}
	if projectID != "" {
		query += ` WHERE project_id = ?`
		args = append(args, projectID)
	}
	query += ` ORDER BY start_date, id`

	rows, err := q.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cycles := []model.Cycle{}
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, err
		}
		cycles = append(cycles, *c)
	}
	return cycles, rows.Err()
}

func (q *Queries) UpdateCycle(ctx context.Context, c *model.Cycle) (int64, error) {
	return rowsAffected(q.exec(ctx, `
		UPDATE cycles SET name = ?, start_date = ?, end_date = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.StartDate.String(), c.EndDate.String(), string(c.Status), formatTime(c.UpdatedAt), c.ID,
	))
}

func (q *Queries) DeleteCycle(ctx context.Context, id string) (int64, error) {
	return rowsAffected(q.exec(ctx, `DELETE FROM cycles WHERE id = ?`, id))
}
