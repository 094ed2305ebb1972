package tracker

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/existflow/catalyst/internal/db"
	"github.com/existflow/catalyst/internal/model"
	"github.com/stretchr/testify/require"
)

// newTestTracker returns a tracker over a fresh sqlite store whose clock
// advances one second per call
func newTestTracker(t *testing.T) (*Tracker, *db.DB) {
	t.Helper()

	store, err := db.Open("", filepath.Join(t.TempDir(), "catalyst.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	tr := New(store.Queries())
	clock := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	tr.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return tr, store
}

func str(s string) *string { return &s }

func date(s string) *model.Date {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func mustProject(t *testing.T, tr *Tracker, name, identifier string) *model.Project {
	t.Helper()
	p, err := tr.CreateProject(context.Background(), model.ProjectInput{Name: name, Identifier: identifier})
	require.NoError(t, err)
	return p
}

func mustTicket(t *testing.T, tr *Tracker, in model.TicketInput) *model.TicketView {
	t.Helper()
	v, err := tr.CreateTicket(context.Background(), in)
	require.NoError(t, err)
	return v
}

// keysOf returns the sorted JSON keys of v
func keysOf(t *testing.T, v interface{}) []string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &m))

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
