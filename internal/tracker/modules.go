package tracker

import (
	"context"
	"fmt"

	"github.com/existflow/catalyst/internal/model"
)

func (t *Tracker) CreateModule(ctx context.Context, in model.ModuleInput) (*model.Module, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := t.now()
	m := &model.Module{
		ID:          t.newID(),
		Name:        in.Name,
		ProjectID:   in.ProjectID,
		Description: in.Description,
		LeadID:      in.LeadID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.q.CreateModule(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create module: %w", err)
	}
	return m, nil
}

func (t *Tracker) ListModules(ctx context.Context, projectID string) ([]model.Module, error) {
	modules, err := t.q.ListModules(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	return modules, nil
}

func (t *Tracker) GetModule(ctx context.Context, id string) (*model.Module, error) {
	m, err := t.q.GetModule(ctx, id)
	if err != nil {
		return nil, notFound("module", err)
	}
	return m, nil
}

func (t *Tracker) UpdateModule(ctx context.Context, id string, patch model.ModulePatch) (*model.Module, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	m, err := t.GetModule(ctx, id)
	if err != nil || patch.Empty() {
		return m, err
	}

	patch.ApplyTo(m)
	m.UpdatedAt = t.now()
	n, err := t.q.UpdateModule(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("failed to update module: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("module %w", ErrNotFound)
	}
	return m, nil
}

func (t *Tracker) DeleteModule(ctx context.Context, id string) (bool, error) {
	n, err := t.q.DeleteModule(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete module: %w", err)
	}
	return n > 0, nil
}
