package tracker

import (
	"context"
	"fmt"

	"github.com/existflow/catalyst/internal/model"
)

func (t *Tracker) CreateUser(ctx context.Context, in model.UserInput) (*model.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := t.now()
	u := &model.User{
		ID:        t.newID(),
		Name:      in.Name,
		Email:     in.Email,
		AvatarURL: in.AvatarURL,
		Color:     in.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.q.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (t *Tracker) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := t.q.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (t *Tracker) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, err := t.q.GetUser(ctx, id)
	if err != nil {
		return nil, notFound("user", err)
	}
	return u, nil
}

func (t *Tracker) UpdateUser(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	u, err := t.GetUser(ctx, id)
	if err != nil || patch.Empty() {
		return u, err
	}

	patch.ApplyTo(u)
	u.UpdatedAt = t.now()
	n, err := t.q.UpdateUser(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}
	return u, nil
}

// DeleteUser keeps tickets assigned to the user; their assignee resolves to
// null afterwards
func (t *Tracker) DeleteUser(ctx context.Context, id string) (bool, error) {
	n, err := t.q.DeleteUser(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return n > 0, nil
}
