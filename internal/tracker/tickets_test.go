package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/existflow/catalyst/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTicketsNewestFirst(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"first", "second", "third"} {
		ids = append(ids, mustTicket(t, tr, model.TicketInput{Title: title}).ID)
	}

	list, err := tr.ListTickets(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, len(list.Tickets), list.Total)
	require.Len(t, list.Tickets, 3)

	assert.Equal(t, ids[2], list.Tickets[0].ID)
	assert.Equal(t, ids[1], list.Tickets[1].ID)
	assert.Equal(t, ids[0], list.Tickets[2].ID)
	for i := 1; i < len(list.Tickets); i++ {
		assert.False(t, list.Tickets[i].CreatedAt.After(list.Tickets[i-1].CreatedAt))
	}
}

func TestListTicketsTiesBrokenByID(t *testing.T) {
	tr, _ := newTestTracker(t)
	fixed := tr.now()
	tr.now = func() time.Time { return fixed }

	ids := []string{"b", "c", "a"}
	n := 0
	tr.newID = func() string {
		id := ids[n]
		n++
		return id
	}
	for range ids {
		mustTicket(t, tr, model.TicketInput{Title: "same instant"})
	}

	list, err := tr.ListTickets(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, list.Tickets, 3)
	assert.Equal(t, "c", list.Tickets[0].ID)
	assert.Equal(t, "b", list.Tickets[1].ID)
	assert.Equal(t, "a", list.Tickets[2].ID)
}

func TestListTicketsByProject(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	web := mustProject(t, tr, "Web", "WEB")
	api := mustProject(t, tr, "API", "API")
	mustTicket(t, tr, model.TicketInput{Title: "a", ProjectID: &web.ID})
	mustTicket(t, tr, model.TicketInput{Title: "b", ProjectID: &api.ID})
	mustTicket(t, tr, model.TicketInput{Title: "c", ProjectID: &web.ID})

	list, err := tr.ListTickets(ctx, web.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	for _, v := range list.Tickets {
		require.NotNil(t, v.Project)
		assert.Equal(t, "Web", v.Project.Name)
	}

	empty, err := tr.ListTickets(ctx, "nothing")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Total)
	assert.NotNil(t, empty.Tickets)
}

func TestListTicketsStoreFailureIsFatal(t *testing.T) {
	tr, store := newTestTracker(t)
	mustTicket(t, tr, model.TicketInput{Title: "a"})

	require.NoError(t, store.Close())

	_, err := tr.ListTickets(context.Background(), "")
	assert.Error(t, err)
}

func TestListTicketsDegradesPerRecord(t *testing.T) {
	tr, store := newTestTracker(t)
	ctx := context.Background()

	good := mustProject(t, tr, "Good", "GD")
	bad := mustProject(t, tr, "Bad", "BD")
	mustTicket(t, tr, model.TicketInput{Title: "fine", ProjectID: &good.ID})
	mustTicket(t, tr, model.TicketInput{Title: "broken", ProjectID: &bad.ID})

	_, err := store.Exec(`UPDATE projects SET updated_at = 'garbage' WHERE id = ?`, bad.ID)
	require.NoError(t, err)

	list, err := tr.ListTickets(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "broken", list.Tickets[0].Title)
	assert.Nil(t, list.Tickets[0].Project)
	require.NotNil(t, list.Tickets[1].Project)
	assert.Equal(t, "Good", list.Tickets[1].Project.Name)
}

func TestListTicketsKeepsTicketWithMalformedFields(t *testing.T) {
	tr, store := newTestTracker(t)
	ctx := context.Background()

	mustTicket(t, tr, model.TicketInput{Title: "healthy", StartDate: date("2024-03-01")})
	drifted := mustTicket(t, tr, model.TicketInput{Title: "drifted", EndDate: date("2024-04-01")})

	_, err := store.Exec(`UPDATE tickets SET start_date = 'garbage', end_date = '04/01/2024' WHERE id = ?`, drifted.ID)
	require.NoError(t, err)

	list, err := tr.ListTickets(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	require.Len(t, list.Tickets, list.Total)

	assert.Equal(t, "drifted", list.Tickets[0].Title)
	assert.Nil(t, list.Tickets[0].StartDate)
	assert.Nil(t, list.Tickets[0].EndDate)
	assert.Equal(t, "healthy", list.Tickets[1].Title)
	require.NotNil(t, list.Tickets[1].StartDate)
	assert.Equal(t, "2024-03-01", list.Tickets[1].StartDate.String())

	got, err := tr.GetTicket(ctx, drifted.ID)
	require.NoError(t, err)
	assert.Nil(t, got.StartDate)
}

func TestListTicketsSkipsUnreadableRow(t *testing.T) {
	tr, store := newTestTracker(t)
	ctx := context.Background()

	mustTicket(t, tr, model.TicketInput{Title: "healthy"})
	broken := mustTicket(t, tr, model.TicketInput{Title: "broken"})

	_, err := store.Exec(`UPDATE tickets SET estimated_hours = 'lots' WHERE id = ?`, broken.ID)
	require.NoError(t, err)

	list, err := tr.ListTickets(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	require.Len(t, list.Tickets, list.Total)
	assert.Equal(t, "healthy", list.Tickets[0].Title)
}

func TestUpdateTicketEmptyPatch(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	created := mustTicket(t, tr, model.TicketInput{Title: "Stay", Summary: str("as is"), Priority: model.PriorityHigh})
	before, err := tr.GetTicket(ctx, created.ID)
	require.NoError(t, err)

	var patch model.TicketPatch
	require.NoError(t, json.Unmarshal([]byte(`{}`), &patch))
	after, err := tr.UpdateTicket(ctx, created.ID, patch)
	require.NoError(t, err)

	assert.Equal(t, before.Title, after.Title)
	assert.Equal(t, before.Summary, after.Summary)
	assert.Equal(t, before.Priority, after.Priority)
	assert.True(t, before.UpdatedAt.Equal(after.UpdatedAt))

	again, err := tr.GetTicket(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, before.UpdatedAt.Equal(again.UpdatedAt))
}

func TestUpdateTicketPartial(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	created := mustTicket(t, tr, model.TicketInput{
		Title: "Partial", Summary: str("text"), Assignee: str("Jane"),
		StartDate: date("2024-01-01"), EndDate: date("2024-01-05"),
	})

	var patch model.TicketPatch
	require.NoError(t, json.Unmarshal([]byte(`{"status":"in_progress","summary":null}`), &patch))
	v, err := tr.UpdateTicket(ctx, created.ID, patch)
	require.NoError(t, err)

	assert.Equal(t, model.StatusInProgress, v.Status)
	assert.Nil(t, v.Summary)
	assert.Equal(t, "Partial", v.Title)
	require.NotNil(t, v.Assignee)
	assert.Equal(t, "Jane", *v.Assignee)
	assert.True(t, v.UpdatedAt.After(created.UpdatedAt))

	stored, err := tr.GetTicket(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, stored.Status)
	assert.Nil(t, stored.Summary)
	assert.Equal(t, "2024-01-05", stored.EndDate.String())
}

func TestUpdateTicketRejectsReversedDates(t *testing.T) {
	tr, _ := newTestTracker(t)
	created := mustTicket(t, tr, model.TicketInput{Title: "Dates", StartDate: date("2024-02-01")})

	_, err := tr.UpdateTicket(context.Background(), created.ID, model.TicketPatch{
		EndDate: model.Some(*date("2024-01-01")),
	})
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestUpdateTicketLabels(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	project := mustProject(t, tr, "Web", "WEB")
	bug, err := tr.CreateLabel(ctx, model.LabelInput{Name: "bug", ProjectID: project.ID})
	require.NoError(t, err)
	ui, err := tr.CreateLabel(ctx, model.LabelInput{Name: "ui", ProjectID: project.ID})
	require.NoError(t, err)

	ticket := mustTicket(t, tr, model.TicketInput{Title: "Labels", LabelIDs: []string{bug.ID}})

	v, err := tr.UpdateTicket(ctx, ticket.ID, model.TicketPatch{LabelIDs: model.Some([]string{ui.ID, bug.ID})})
	require.NoError(t, err)
	require.Len(t, v.Labels, 2)
	assert.Equal(t, "ui", v.Labels[0].Name)

	v, err = tr.UpdateTicket(ctx, ticket.ID, model.TicketPatch{Title: model.Some("Renamed")})
	require.NoError(t, err)
	assert.Len(t, v.Labels, 2)

	v, err = tr.UpdateTicket(ctx, ticket.ID, model.TicketPatch{LabelIDs: model.Null[[]string]()})
	require.NoError(t, err)
	assert.Empty(t, v.Labels)
}

func TestTicketNotFound(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	_, err := tr.GetTicket(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = tr.UpdateTicket(ctx, "missing", model.TicketPatch{Title: model.Some("x")})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = tr.UpdateTicket(ctx, "missing", model.TicketPatch{})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteTicketIdempotent(t *testing.T) {
	tr, store := newTestTracker(t)
	ctx := context.Background()

	project := mustProject(t, tr, "Web", "WEB")
	label, err := tr.CreateLabel(ctx, model.LabelInput{Name: "bug", ProjectID: project.ID})
	require.NoError(t, err)
	ticket := mustTicket(t, tr, model.TicketInput{Title: "Gone", LabelIDs: []string{label.ID}})

	ok, err := tr.DeleteTicket(ctx, ticket.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	for i := 0; i < 2; i++ {
		ok, err = tr.DeleteTicket(ctx, ticket.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	var links int
	require.NoError(t, store.QueryRow(`SELECT COUNT(*) FROM ticket_labels WHERE ticket_id = ?`, ticket.ID).Scan(&links))
	assert.Zero(t, links)
}

func TestDeleteParentOrphansSubtasks(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	parent := mustTicket(t, tr, model.TicketInput{Title: "Parent"})
	child := mustTicket(t, tr, model.TicketInput{Title: "Child", ParentTicketID: &parent.ID})
	require.NotNil(t, child.Parent)

	_, err := tr.DeleteTicket(ctx, parent.ID)
	require.NoError(t, err)

	v, err := tr.GetTicket(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, v.Parent)
	require.NotNil(t, v.ParentTicketID)
	assert.Equal(t, parent.ID, *v.ParentTicketID)
}

func TestParentValidation(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	_, err := tr.CreateTicket(ctx, model.TicketInput{Title: "x", ParentTicketID: str("missing")})
	assert.True(t, errors.Is(err, ErrInvalid))

	a := mustTicket(t, tr, model.TicketInput{Title: "a"})
	b := mustTicket(t, tr, model.TicketInput{Title: "b", ParentTicketID: &a.ID})
	c := mustTicket(t, tr, model.TicketInput{Title: "c", ParentTicketID: &b.ID})

	_, err = tr.UpdateTicket(ctx, a.ID, model.TicketPatch{ParentTicketID: model.Some(a.ID)})
	assert.True(t, errors.Is(err, ErrInvalid), "self parent")

	_, err = tr.UpdateTicket(ctx, a.ID, model.TicketPatch{ParentTicketID: model.Some(c.ID)})
	assert.True(t, errors.Is(err, ErrInvalid), "cycle through c -> b -> a")

	v, err := tr.UpdateTicket(ctx, c.ID, model.TicketPatch{ParentTicketID: model.Some(a.ID)})
	require.NoError(t, err)
	require.NotNil(t, v.Parent)
	assert.Equal(t, "a", v.Parent.Title)

	v, err = tr.UpdateTicket(ctx, c.ID, model.TicketPatch{ParentTicketID: model.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, v.Parent)
}

func TestCreateTicketValidation(t *testing.T) {
	tr, _ := newTestTracker(t)

	_, err := tr.CreateTicket(context.Background(), model.TicketInput{Title: "   "})
	assert.True(t, errors.Is(err, ErrInvalid))

	list, err := tr.ListTickets(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, list.Total)
}
