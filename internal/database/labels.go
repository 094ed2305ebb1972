package database

import (
	"context"
	"database/sql"

	"github.com/existflow/catalyst/internal/model"
)

const labelColumns = `id, name, color, project_id, created_at, updated_at`

func scanLabel(s scanner) (*model.Label, error) {
	var l model.Label
	var color sql.NullString
	var createdAt, updatedAt string
	if err := s.Scan(&l.ID, &l.Name, &color, &l.ProjectID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	l.Color = stringPtr(color)
	var err error
	if l.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if l.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (q *Queries) CreateLabel(ctx context.Context, l *model.Label) error {
	_, err := q.exec(ctx, `
		INSERT INTO labels (`+labelColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.Name, nullString(l.Color), l.ProjectID,
		formatTime(l.CreatedAt), formatTime(l.UpdatedAt),
	)
	return err
}

func (q *Queries) GetLabel(ctx context.Context, id string) (*model.Label, error) {
	return scanLabel(q.queryRow(ctx, `SELECT `+labelColumns+` FROM labels WHERE id = ?`, id))
}

// ListLabels returns every label, or only those of projectID when it is set
func (q *Queries) ListLabels(ctx context.Context, projectID string) ([]model.Label, error) {
	query := `SELECT ` + labelColumns + ` FROM labels`
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

	labels := []model.Label{}
	for rows.Next() {
		l, err := scanLabel(rows)
		if err != nil {
			return nil, err
		}
		labels = append(labels, *l)
	}
	return labels, rows.Err()
}

func (q *Queries) UpdateLabel(ctx context.Context, l *model.Label) (int64, error) {
	return rowsAffected(q.exec(ctx, `
		UPDATE labels SET name = ?, color = ?, updated_at = ? WHERE id = ?`,
		l.Name, nullString(l.Color), formatTime(l.UpdatedAt), l.ID,
	))
}

func (q *Queries) DeleteLabel(ctx context.Context, id string) (int64, error) {
	return rowsAffected(q.exec(ctx, `DELETE FROM labels WHERE id = ?`, id))
}
