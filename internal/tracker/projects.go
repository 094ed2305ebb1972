package tracker

import (
	"context"
	"fmt"

	"github.com/existflow/catalyst/internal/model"
)

func (t *Tracker) CreateProject(ctx context.Context, in model.ProjectInput) (*model.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := t.now()
	p := &model.Project{
		ID:          t.newID(),
		Name:        in.Name,
		Identifier:  in.Identifier,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.q.CreateProject(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return p, nil
}

// ListProjects returns every project, newest first
func (t *Tracker) ListProjects(ctx context.Context) ([]model.Project, error) {
	projects, err := t.q.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (t *Tracker) GetProject(ctx context.Context, id string) (*model.Project, error) {
	p, err := t.q.GetProject(ctx, id)
	if err != nil {
		return nil, notFound("project", err)
	}
	return p, nil
}

// UpdateProject applies the fields present in patch. An empty patch returns
// the stored project untouched.
func (t *Tracker) UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	p, err := t.GetProject(ctx, id)
	if err != nil || patch.Empty() {
		return p, err
	}

	patch.ApplyTo(p)
	p.UpdatedAt = t.now()
	n, err := t.q.UpdateProject(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("project %w", ErrNotFound)
	}
	return p, nil
}

// DeleteProject reports false when the project does not exist. Tickets,
// labels, cycles and modules of the project are kept.
func (t *Tracker) DeleteProject(ctx context.Context, id string) (bool, error) {
	n, err := t.q.DeleteProject(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}
	return n > 0, nil
}
