package tracker

import (
	"context"
	"fmt"

	"github.com/existflow/catalyst/internal/database"
	"github.com/existflow/catalyst/internal/model"
)

func (t *Tracker) CreateLabel(ctx context.Context, in model.LabelInput) (*model.Label, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := t.now()
	l := &model.Label{
		ID:        t.newID(),
		Name:      in.Name,
		Color:     in.Color,
		ProjectID: in.ProjectID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.q.CreateLabel(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to create label: %w", err)
	}
	return l, nil
}

// ListLabels returns labels ordered by name, filtered by project when
// projectID is not empty
func (t *Tracker) ListLabels(ctx context.Context, projectID string) ([]model.Label, error) {
	labels, err := t.q.ListLabels(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

func (t *Tracker) GetLabel(ctx context.Context, id string) (*model.Label, error) {
	l, err := t.q.GetLabel(ctx, id)
	if err != nil {
		return nil, notFound("label", err)
	}
	return l, nil
}

func (t *Tracker) UpdateLabel(ctx context.Context, id string, patch model.LabelPatch) (*model.Label, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	l, err := t.GetLabel(ctx, id)
	if err != nil || patch.Empty() {
		return l, err
	}

	patch.ApplyTo(l)
	l.UpdatedAt = t.now()
	n, err := t.q.UpdateLabel(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("failed to update label: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("label %w", ErrNotFound)
	}
	return l, nil
}

// DeleteLabel removes the label and its ticket links
func (t *Tracker) DeleteLabel(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := t.q.InTx(ctx, func(q *database.Queries) error {
		if err := q.UnlinkLabel(ctx, id); err != nil {
			return err
		}
		n, err := q.DeleteLabel(ctx, id)
		deleted = n > 0
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete label: %w", err)
	}
	return deleted, nil
}
