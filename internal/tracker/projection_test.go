package tracker

import (
	"context"
	"testing"

	"github.com/existflow/catalyst/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectTicketMinimalShapes(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	project := mustProject(t, tr, "Web", "WEB")
	cycle, err := tr.CreateCycle(ctx, model.CycleInput{
		Name: "Sprint 1", ProjectID: project.ID,
		StartDate: date("2024-01-01"), EndDate: date("2024-01-14"),
	})
	require.NoError(t, err)
	module, err := tr.CreateModule(ctx, model.ModuleInput{Name: "Auth", ProjectID: project.ID, Description: str("login")})
	require.NoError(t, err)
	user, err := tr.CreateUser(ctx, model.UserInput{Name: "Jane Doe", Email: str("jane@example.com")})
	require.NoError(t, err)
	label, err := tr.CreateLabel(ctx, model.LabelInput{Name: "bug", Color: str("#ff0000"), ProjectID: project.ID})
	require.NoError(t, err)

	parent := mustTicket(t, tr, model.TicketInput{Title: "Epic", ProjectID: &project.ID})
	ticket := mustTicket(t, tr, model.TicketInput{
		Title:          "Login form",
		ProjectID:      &project.ID,
		CycleID:        &cycle.ID,
		ModuleID:       &module.ID,
		ParentTicketID: &parent.ID,
		AssigneeID:     &user.ID,
		LabelIDs:       []string{label.ID},
	})
	mustTicket(t, tr, model.TicketInput{Title: "Validate email", ParentTicketID: &ticket.ID})

	v, err := tr.GetTicket(ctx, ticket.ID)
	require.NoError(t, err)

	require.NotNil(t, v.Project)
	assert.Equal(t, []string{"id", "identifier", "name"}, keysOf(t, v.Project))
	require.NotNil(t, v.Cycle)
	assert.Equal(t, []string{"end_date", "id", "name", "start_date"}, keysOf(t, v.Cycle))
	require.NotNil(t, v.Module)
	assert.Equal(t, []string{"id", "name"}, keysOf(t, v.Module))
	require.NotNil(t, v.Parent)
	assert.Equal(t, []string{"id", "status", "title"}, keysOf(t, v.Parent))
	require.Len(t, v.Subtasks, 1)
	assert.Equal(t, []string{"id", "status", "title"}, keysOf(t, v.Subtasks[0]))
	require.Len(t, v.Labels, 1)
	assert.Equal(t, []string{"color", "id", "name"}, keysOf(t, v.Labels[0]))
	require.NotNil(t, v.AssigneeUser)
	assert.Equal(t, []string{"avatar_url", "color", "email", "id", "name"}, keysOf(t, v.AssigneeUser))

	assert.Equal(t, "WEB", v.Project.Identifier)
	assert.Equal(t, "2024-01-14", v.Cycle.EndDate.String())
	assert.Equal(t, "Epic", v.Parent.Title)
	assert.Equal(t, "Validate email", v.Subtasks[0].Title)
	assert.Equal(t, model.StatusOpen, v.Subtasks[0].Status)
}

func TestProjectTicketUnsetRelationsAreNull(t *testing.T) {
	tr, _ := newTestTracker(t)

	v := mustTicket(t, tr, model.TicketInput{Title: "Loose"})

	keys := keysOf(t, v)
	for _, k := range []string{"project", "cycle", "module", "parent", "assignee_user", "labels", "subtasks"} {
		assert.Contains(t, keys, k)
	}
	assert.Nil(t, v.Project)
	assert.Nil(t, v.Cycle)
	assert.Nil(t, v.Module)
	assert.Nil(t, v.Parent)
	assert.Nil(t, v.AssigneeUser)
	assert.Empty(t, v.Labels)
	assert.NotNil(t, v.Labels)
	assert.Empty(t, v.Subtasks)
}

func TestProjectTicketDanglingProject(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	project := mustProject(t, tr, "Web", "WEB")
	module, err := tr.CreateModule(ctx, model.ModuleInput{Name: "Auth", ProjectID: project.ID})
	require.NoError(t, err)
	ticket := mustTicket(t, tr, model.TicketInput{Title: "Orphan", ProjectID: &project.ID, ModuleID: &module.ID})

	ok, err := tr.DeleteProject(ctx, project.ID)
	require.NoError(t, err)
	require.True(t, ok)

	v, err := tr.GetTicket(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Nil(t, v.Project)
	require.NotNil(t, v.ProjectID)
	assert.Equal(t, project.ID, *v.ProjectID)
	require.NotNil(t, v.Module)
	assert.Equal(t, "Auth", v.Module.Name)

	never := mustTicket(t, tr, model.TicketInput{Title: "Ghost", ProjectID: str("no-such-project"), CycleID: str("no-such-cycle")})
	assert.Nil(t, never.Project)
	assert.Nil(t, never.Cycle)
}

func TestSubtaskDriftKeepsSiblings(t *testing.T) {
	tr, store := newTestTracker(t)
	ctx := context.Background()

	parent := mustTicket(t, tr, model.TicketInput{Title: "Parent"})
	mustTicket(t, tr, model.TicketInput{Title: "Steady child", ParentTicketID: &parent.ID})
	drifted := mustTicket(t, tr, model.TicketInput{Title: "Drifted child", ParentTicketID: &parent.ID})
	broken := mustTicket(t, tr, model.TicketInput{Title: "Broken child", ParentTicketID: &parent.ID})

	_, err := store.Exec(`UPDATE tickets SET updated_at = 'x' WHERE id = ?`, drifted.ID)
	require.NoError(t, err)
	_, err = store.Exec(`UPDATE tickets SET estimated_hours = 'lots' WHERE id = ?`, broken.ID)
	require.NoError(t, err)

	v, err := tr.GetTicket(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, v.Subtasks, 2)
	assert.Equal(t, "Drifted child", v.Subtasks[0].Title)
	assert.Equal(t, "Steady child", v.Subtasks[1].Title)
}

func TestAssigneeUserWinsOverFreeText(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	user, err := tr.CreateUser(ctx, model.UserInput{Name: "Jane Doe", AvatarURL: str("https://example.com/jane.png")})
	require.NoError(t, err)

	v := mustTicket(t, tr, model.TicketInput{Title: "Review", Assignee: str("Jane"), AssigneeID: &user.ID})

	require.NotNil(t, v.AssigneeUser)
	assert.Equal(t, user.ID, v.AssigneeUser.ID)
	assert.Equal(t, "Jane Doe", v.AssigneeUser.Name)
	require.NotNil(t, v.Assignee)
	assert.Equal(t, "Jane", *v.Assignee)
}

func TestAssigneeFailureLeavesOtherRelations(t *testing.T) {
	tr, store := newTestTracker(t)
	ctx := context.Background()

	project := mustProject(t, tr, "Web", "WEB")
	user, err := tr.CreateUser(ctx, model.UserInput{Name: "Jane Doe"})
	require.NoError(t, err)
	ticket := mustTicket(t, tr, model.TicketInput{Title: "Review", ProjectID: &project.ID, AssigneeID: &user.ID})

	// a row the scanner cannot read, as left behind by schema drift
	_, err = store.Exec(`UPDATE users SET created_at = 'not a time' WHERE id = ?`, user.ID)
	require.NoError(t, err)

	v, err := tr.GetTicket(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Nil(t, v.AssigneeUser)
	require.NotNil(t, v.Project)
	assert.Equal(t, "Web", v.Project.Name)
}

func TestLabelsKeepAssignedOrderAndSkipMissing(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	project := mustProject(t, tr, "Web", "WEB")
	bug, err := tr.CreateLabel(ctx, model.LabelInput{Name: "bug", ProjectID: project.ID})
	require.NoError(t, err)
	ui, err := tr.CreateLabel(ctx, model.LabelInput{Name: "ui", ProjectID: project.ID})
	require.NoError(t, err)

	v := mustTicket(t, tr, model.TicketInput{Title: "Button", LabelIDs: []string{ui.ID, "missing", bug.ID}})

	require.Len(t, v.Labels, 2)
	assert.Equal(t, "ui", v.Labels[0].Name)
	assert.Equal(t, "bug", v.Labels[1].Name)
	assert.Nil(t, v.Labels[0].Color)
}

func TestGuardRecoversPanic(t *testing.T) {
	_, err := guard(func() (*model.Project, error) {
		var m map[string]int
		m["boom"] = 1
		return nil, nil
	})
	assert.Error(t, err)

	got := lookup(context.Background(), "t1", "project", str("p1"), func(context.Context, string) (*model.Project, error) {
		panic("lazy relation")
	})
	assert.Nil(t, got)
}
