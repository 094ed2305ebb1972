package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/existflow/catalyst/internal/client"
	"github.com/existflow/catalyst/internal/model"
	"github.com/existflow/catalyst/internal/tracker"
	"github.com/existflow/catalyst/internal/tui"
	"github.com/spf13/cobra"
)

var ticketsCmd = &cobra.Command{
	Use:     "tickets",
	Aliases: []string{"ls"},
	Short:   "List tickets",
	Long: `List tickets newest first, grouped by project.

Examples:
  catalyst tickets
  catalyst tickets --project 3f6c...
  catalyst tickets --server http://localhost:8000`,
	RunE: runTickets,
}

var (
	ticketsProject string
	ticketsServer  string
)

func init() {
	ticketsCmd.Flags().StringVarP(&ticketsProject, "project", "P", "", "Only tickets of this project id")
	ticketsCmd.Flags().StringVar(&ticketsServer, "server", "", "Read from a running server instead of the local store")
}

func runTickets(cmd *cobra.Command, args []string) error {
	list, err := loadTickets(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if list.Total == 0 {
		fmt.Fprintln(out, "No tickets found.")
		return nil
	}
	printTicketGroups(out, list.Tickets)
	return nil
}

func loadTickets(ctx context.Context) (model.TicketList, error) {
	if ticketsServer != "" {
		return client.New(ticketsServer).ListTickets(ctx, ticketsProject)
	}

	database, err := openStore()
	if err != nil {
		return model.TicketList{}, err
	}
	defer func() {
		_ = database.Close()
	}()

	return tracker.New(database.Queries()).ListTickets(ctx, ticketsProject)
}

// printTicketGroups prints tickets grouped by project, keeping the order in
// which each project first appears.
func printTicketGroups(w io.Writer, tickets []model.TicketView) {
	var order []string
	groups := make(map[string][]model.TicketView)
	names := make(map[string]string)

	for _, t := range tickets {
		key, name := "", "No project"
		if t.Project != nil {
			key, name = t.Project.ID, fmt.Sprintf("%s (%s)", t.Project.Name, t.Project.Identifier)
		} else if t.ProjectID != nil {
			key, name = *t.ProjectID, *t.ProjectID
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
			names[key] = name
		}
		groups[key] = append(groups[key], t)
	}

	for _, key := range order {
		printTickets(w, names[key], groups[key])
	}
}

func printTickets(w io.Writer, projectName string, tickets []model.TicketView) {
	pending := 0
	for _, t := range tickets {
		if t.Status != model.StatusDone && t.Status != model.StatusCancelled {
			pending++
		}
	}

	fmt.Fprintf(w, "\n%s %s\n", tui.HeaderStyle.Render(projectName), tui.HelpStyle.Render(fmt.Sprintf("(%d pending)", pending)))
	fmt.Fprintln(w, tui.RuleStyle.Render(strings.Repeat("─", 72)))

	for _, t := range tickets {
		printTicket(w, t)
	}
	fmt.Fprintln(w)
}

func printTicket(w io.Writer, t model.TicketView) {
	shortID := t.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	title := t.Title
	if len(title) > 40 {
		title = title[:37] + "..."
	}
	if t.Status == model.StatusDone || t.Status == model.StatusCancelled {
		title = tui.TicketDoneStyle.Render(title)
	}

	assignee := ""
	switch {
	case t.AssigneeUser != nil:
		assignee = "@" + t.AssigneeUser.Name
	case t.Assignee != nil:
		assignee = "@" + *t.Assignee
	}

	due := ""
	if t.EndDate != nil {
		due = t.EndDate.Format("Jan 2")
	}

	fmt.Fprintf(w, "  %s  %-8s  %-40s  %-6s  %-12s  %s\n",
		tui.FormatStatus(t.Status), shortID, title, due, assignee, tui.FormatPriority(t.Priority))

	if len(t.Labels) > 0 {
		names := make([]string, 0, len(t.Labels))
		for _, l := range t.Labels {
			names = append(names, l.Name)
		}
		fmt.Fprintf(w, "      %s\n", tui.HelpStyle.Render(strings.Join(names, ", ")))
	}
	if len(t.Subtasks) > 0 {
		fmt.Fprintf(w, "      %s\n", tui.HelpStyle.Render(fmt.Sprintf("%d subtasks", len(t.Subtasks))))
	}
}
