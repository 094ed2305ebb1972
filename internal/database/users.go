package database

import (
	"context"
	"database/sql"

	"github.com/existflow/catalyst/internal/model"
)

const userColumns = `id, name, email, avatar_url, color, created_at, updated_at`

func scanUser(s scanner) (*model.User, error) {
	var u model.User
	var email, avatarURL, color sql.NullString
	var createdAt, updatedAt string
	if err := s.Scan(&u.ID, &u.Name, &email, &avatarURL, &color, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	u.Email = stringPtr(email)
	u.AvatarURL = stringPtr(avatarURL)
	u.Color = stringPtr(color)
	var err error
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (q *Queries) CreateUser(ctx context.Context, u *model.User) error {
	_, err := q.exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, nullString(u.Email), nullString(u.AvatarURL), nullString(u.Color),
		formatTime(u.CreatedAt), formatTime(u.UpdatedAt),
	)
	return err
}

func (q *Queries) GetUser(ctx context.Context, id string) (*model.User, error) {
	return scanUser(q.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (q *Queries) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := q.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (q *Queries) UpdateUser(ctx context.Context, u *model.User) (int64, error) {
	return rowsAffected(q.exec(ctx, `
		UPDATE users SET name = ?, email = ?, avatar_url = ?, color = ?, updated_at = ?
		WHERE id = ?`,
		u.Name, nullString(u.Email), nullString(u.AvatarURL), nullString(u.Color), formatTime(u.UpdatedAt), u.ID,
	))
}

func (q *Queries) DeleteUser(ctx context.Context, id string) (int64, error) {
	return rowsAffected(q.exec(ctx, `DELETE FROM users WHERE id = ?`, id))
}
