package database

import (
	"context"
	"database/sql"

	"github.com/existflow/catalyst/internal/model"
)

const moduleColumns = `id, name, project_id, description, lead_id, created_at, updated_at`

func scanModule(s scanner) (*model.Module, error) {
	var m model.Module
	var description, leadID sql.NullString
	var createdAt, updatedAt string
	if err := s.Scan(&m.ID, &m.Name, &m.ProjectID, &description, &leadID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	m.Description = stringPtr(description)
	m.LeadID = stringPtr(leadID)
	var err error
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (q *Queries) CreateModule(ctx context.Context, m *model.Module) error {
	_, err := q.exec(ctx, `
		INSERT INTO modules (`+moduleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.ProjectID, nullString(m.Description), nullString(m.LeadID),
		formatTime(m.CreatedAt), formatTime(m.UpdatedAt),
	)
	return err
}

func (q *Queries) GetModule(ctx context.Context, id string) (*model.Module, error) {
	return scanModule(q.queryRow(ctx, `SELECT `+moduleColumns+` FROM modules WHERE id = ?`, id))
}

func (q *Queries) ListModules(ctx context.Context, projectID string) ([]model.Module, error) {
	query := `SELECT ` + moduleColumns + ` FROM modules`
	var args []interface{}
	if projectID != "" {
		query += ` WHERE project_id = ?`
		args = append(args, projectID)
	}
	query += ` ORDER BY name, id`

	rows, err := q.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	modules := []model.Module{}
	for rows.Next() {
		m, err := scanModule(rows)
		if err != nil {
			return nil, err
		}
		modules = append(modules, *m)
	}
	return modules, rows.Err()
}

func (q *Queries) UpdateModule(ctx context.Context, m *model.Module) (int64, error) {
	return rowsAffected(q.exec(ctx, `
		UPDATE modules SET name = ?, description = ?, lead_id = ?, updated_at = ?
		WHERE id = ?`,
		m.Name, nullString(m.Description), nullString(m.LeadID), formatTime(m.UpdatedAt), m.ID,
	))
}

func (q *Queries) DeleteModule(ctx context.Context, id string) (int64, error) {
	return rowsAffected(q.exec(ctx, `DELETE FROM modules WHERE id = ?`, id))
}
