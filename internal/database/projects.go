package database

import (
	"context"
	"database/sql"

	"github.com/existflow/catalyst/internal/model"
)

const projectColumns = `id, name, identifier, description, created_at, updated_at`

func scanProject(s scanner) (*model.Project, error) {
	var p model.Project
	var description sql.NullString
	var createdAt, updatedAt string
	if err := s.Scan(&p.ID, &p.Name, &p.Identifier, &description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.Description = stringPtr(description)
	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (q *Queries) CreateProject(ctx context.Context, p *model.Project) error {
	_, err := q.exec(ctx, `
		INSERT INTO projects (`+projectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Identifier, nullString(p.Description),
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	return err
}

// GetProject returns sql.ErrNoRows when id is absent
func (q *Queries) GetProject(ctx context.Context, id string) (*model.Project, error) {
	return scanProject(q.queryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
}

func (q *Queries) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := q.query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (q *Queries) UpdateProject(ctx context.Context, p *model.Project) (int64, error) {
	return rowsAffected(q.exec(ctx, `
		UPDATE projects SET name = ?, identifier = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Identifier, nullString(p.Description), formatTime(p.UpdatedAt), p.ID,
	))
}

func (q *Queries) DeleteProject(ctx context.Context, id string) (int64, error) {
	return rowsAffected(q.exec(ctx, `DELETE FROM projects WHERE id = ?`, id))
}
