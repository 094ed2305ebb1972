package tracker

import (
	"context"
	"fmt"

	"github.com/existflow/catalyst/internal/model"
)

func (t *Tracker) CreateCycle(ctx context.Context, in model.CycleInput) (*model.Cycle, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = model.CyclePlanned
	}
	now := t.now()
	c := &model.Cycle{
		ID:        t.newID(),
		Name:      in.Name,
		ProjectID: in.ProjectID,
		StartDate: *in.StartDate,
		EndDate:   *in.EndDate,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.q.CreateCycle(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create cycle: %w", err)
	}
	return c, nil
}

// ListCycles returns cycles ordered by start date
func (t *Tracker) ListCycles(ctx context.Context, projectID string) ([]model.Cycle, error) {
	cycles, err := t.q.ListCycles(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cycles: %w", err)
	}
	return cycles, nil
}

func (t *Tracker) GetCycle(ctx context.Context, id string) (*model.Cycle, error) {
	c, err := t.q.GetCycle(ctx, id)
	if err != nil {
		return nil, notFound("cycle", err)
	}
	return c, nil
}

func (t *Tracker) UpdateCycle(ctx context.Context, id string, patch model.CyclePatch) (*model.Cycle, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	c, err := t.GetCycle(ctx, id)
	if err != nil || patch.Empty() {
		return c, err
	}

	patch.ApplyTo(c)
	if c.EndDate.Before(c.StartDate.Time) {
		return nil, fmt.Errorf("%w: end_date %s is before start_date %s", ErrInvalid, c.EndDate, c.StartDate)
	}
	c.UpdatedAt = t.now()
	n, err := t.q.UpdateCycle(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to update cycle: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("cycle %w", ErrNotFound)
	}
	return c, nil
}

func (t *Tracker) DeleteCycle(ctx context.Context, id string) (bool, error) {
	n, err := t.q.DeleteCycle(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete cycle: %w", err)
	}
	return n > 0, nil
}
