package model

import "time"

// Cycle is a time-boxed iteration within a project
type Cycle struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	ProjectID string      `json:"project_id"`
	StartDate Date        `json:"start_date"`
	EndDate   Date        `json:"end_date"`
	Status    CycleStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type CycleInput struct {
	Name      string      `json:"name"`
	ProjectID string      `json:"project_id"`
	StartDate *Date       `json:"start_date"`
	EndDate   *Date       `json:"end_date"`
	Status    CycleStatus `json:"status"`
}

func (in CycleInput) Validate() error {
	if err := checkRequired("name", in.Name, 255); err != nil {
		return err
	}
	if err := checkRequired("project_id", in.ProjectID, 255); err != nil {
		return err
	}
	if in.StartDate == nil || in.EndDate == nil {
		return invalidf("start_date and end_date are required")
	}
	return checkDateRange(in.StartDate, in.EndDate)
}

type CyclePatch struct {
	Name      Opt[string]      `json:"name"`
	StartDate Opt[Date]        `json:"start_date"`
	EndDate   Opt[Date]        `json:"end_date"`
	Status    Opt[CycleStatus] `json:"status"`
}

func (p CyclePatch) Validate() error {
	if err := checkPatchRequired("name", p.Name, 255); err != nil {
		return err
	}
	if p.StartDate.Set && p.StartDate.Null {
		return invalidf("start_date cannot be null")
	}
	if p.EndDate.Set && p.EndDate.Null {
		return invalidf("end_date cannot be null")
	}
	if p.Status.Set && p.Status.Null {
		return invalidf("status cannot be null")
	}
	return nil
}

func (p CyclePatch) Empty() bool {
	return !p.Name.Set && !p.StartDate.Set && !p.EndDate.Set && !p.Status.Set
}

func (p CyclePatch) ApplyTo(c *Cycle) {
	if p.Name.Set {
		c.Name = p.Name.Value
	}
	if p.StartDate.Set {
		c.StartDate = p.StartDate.Value
	}
	if p.EndDate.Set {
		c.EndDate = p.EndDate.Value
	}
	if p.Status.Set {
		c.Status = p.Status.Value
	}
}

type CycleRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate Date   `json:"start_date"`
	EndDate   Date   `json:"end_date"`
}

func (c *Cycle) Ref() *CycleRef {
	return &CycleRef{ID: c.ID, Name: c.Name, StartDate: c.StartDate, EndDate: c.EndDate}
}
