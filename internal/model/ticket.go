package model

import "time"

// Ticket is a unit of tracked work.
//
// Assignee is the legacy free-text name; AssigneeID references a User and
// takes precedence when the ticket is projected.
type Ticket struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Summary        *string      `json:"summary"`
	StartDate      *Date        `json:"start_date"`
	EndDate        *Date        `json:"end_date"`
	Assignee       *string      `json:"assignee"`
	AssigneeID     *string      `json:"assignee_id"`
	Status         TicketStatus `json:"status"`
	Priority       Priority     `json:"priority"`
	EstimatedHours *float64     `json:"estimated_hours"`
	ProjectID      *string      `json:"project_id"`
	CycleID        *string      `json:"cycle_id"`
	ModuleID       *string      `json:"module_id"`
	ParentTicketID *string      `json:"parent_ticket_id"`
	LabelIDs       []string     `json:"-"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// TicketInput is the body of a create request
type TicketInput struct {
	Title          string       `json:"title"`
	Summary        *string      `json:"summary"`
	StartDate      *Date        `json:"start_date"`
	EndDate        *Date        `json:"end_date"`
	Assignee       *string      `json:"assignee"`
	AssigneeID     *string      `json:"assignee_id"`
	Status         TicketStatus `json:"status"`
	Priority       Priority     `json:"priority"`
	EstimatedHours *float64     `json:"estimated_hours"`
	ProjectID      *string      `json:"project_id"`
	CycleID        *string      `json:"cycle_id"`
	ModuleID       *string      `json:"module_id"`
	ParentTicketID *string      `json:"parent_ticket_id"`
	LabelIDs       []string     `json:"label_ids"`
}

func (in TicketInput) Validate() error {
	if err := checkRequired("title", in.Title, 255); err != nil {
		return err
	}
	if err := checkOptLen("assignee", in.Assignee, 255); err != nil {
		return err
	}
	if in.EstimatedHours != nil && *in.EstimatedHours < 0 {
		return invalidf("estimated_hours must not be negative")
	}
	return checkDateRange(in.StartDate, in.EndDate)
}

// Ticket builds the record to store, filling status and priority defaults
func (in TicketInput) Ticket() Ticket {
	t := Ticket{
		Title:          in.Title,
		Summary:        in.Summary,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Assignee:       in.Assignee,
		AssigneeID:     in.AssigneeID,
		Status:         in.Status,
		Priority:       in.Priority,
		EstimatedHours: in.EstimatedHours,
		ProjectID:      in.ProjectID,
		CycleID:        in.CycleID,
		ModuleID:       in.ModuleID,
		ParentTicketID: in.ParentTicketID,
		LabelIDs:       dedupe(in.LabelIDs),
	}
	if t.Status == "" {
		t.Status = StatusOpen
	}
	if t.Priority == "" {
		t.Priority = PriorityNone
	}
	return t
}

// TicketPatch is the body of a partial update
type TicketPatch struct {
	Title          Opt[string]       `json:"title"`
	Summary        Opt[string]       `json:"summary"`
	StartDate      Opt[Date]         `json:"start_date"`
	EndDate        Opt[Date]         `json:"end_date"`
	Assignee       Opt[string]       `json:"assignee"`
	AssigneeID     Opt[string]       `json:"assignee_id"`
	Status         Opt[TicketStatus] `json:"status"`
	Priority       Opt[Priority]     `json:"priority"`
	EstimatedHours Opt[float64]      `json:"estimated_hours"`
	ProjectID      Opt[string]       `json:"project_id"`
	CycleID        Opt[string]       `json:"cycle_id"`
	ModuleID       Opt[string]       `json:"module_id"`
	ParentTicketID Opt[string]       `json:"parent_ticket_id"`
	LabelIDs       Opt[[]string]     `json:"label_ids"`
}

func (p TicketPatch) Validate() error {
	if err := checkPatchRequired("title", p.Title, 255); err != nil {
		return err
	}
	if err := checkPatchLen("assignee", p.Assignee, 255); err != nil {
		return err
	}
	if p.Status.Set && p.Status.Null {
		return invalidf("status cannot be null")
	}
	if p.Priority.Set && p.Priority.Null {
		return invalidf("priority cannot be null")
	}
	if h := p.EstimatedHours.Ptr(); h != nil && *h < 0 {
		return invalidf("estimated_hours must not be negative")
	}
	return nil
}

func (p TicketPatch) Empty() bool {
	return !p.Title.Set && !p.Summary.Set && !p.StartDate.Set && !p.EndDate.Set &&
		!p.Assignee.Set && !p.AssigneeID.Set && !p.Status.Set && !p.Priority.Set &&
		!p.EstimatedHours.Set && !p.ProjectID.Set && !p.CycleID.Set && !p.ModuleID.Set &&
		!p.ParentTicketID.Set && !p.LabelIDs.Set
}

// ApplyTo copies the set fields onto t. A null label_ids clears the labels.
func (p TicketPatch) ApplyTo(t *Ticket) {
	if p.Title.Set {
		t.Title = p.Title.Value
	}
	p.Summary.Apply(&t.Summary)
	p.StartDate.Apply(&t.StartDate)
	p.EndDate.Apply(&t.EndDate)
	p.Assignee.Apply(&t.Assignee)
	p.AssigneeID.Apply(&t.AssigneeID)
	if p.Status.Set {
		t.Status = p.Status.Value
	}
	if p.Priority.Set {
		t.Priority = p.Priority.Value
	}
	p.EstimatedHours.Apply(&t.EstimatedHours)
	p.ProjectID.Apply(&t.ProjectID)
	p.CycleID.Apply(&t.CycleID)
	p.ModuleID.Apply(&t.ModuleID)
	p.ParentTicketID.Apply(&t.ParentTicketID)
	if p.LabelIDs.Set {
		t.LabelIDs = dedupe(p.LabelIDs.Value)
	}
}

// TicketRef is the nested form of a parent ticket or subtask
type TicketRef struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Status TicketStatus `json:"status"`
}

func (t *Ticket) Ref() TicketRef {
	return TicketRef{ID: t.ID, Title: t.Title, Status: t.Status}
}

// TicketView is a ticket with its related records inlined. Relations that
// could not be resolved are null (or left out of Labels and Subtasks).
type TicketView struct {
	Ticket
	Project      *ProjectRef `json:"project"`
	Cycle        *CycleRef   `json:"cycle"`
	Module       *ModuleRef  `json:"module"`
	Parent       *TicketRef  `json:"parent"`
	Labels       []LabelRef  `json:"labels"`
	Subtasks     []TicketRef `json:"subtasks"`
	AssigneeUser *UserRef    `json:"assignee_user"`
}

// TicketList is the response of a ticket listing
type TicketList struct {
	Tickets []TicketView `json:"tickets"`
	Total   int          `json:"total"`
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
