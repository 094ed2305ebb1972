package model

import "time"

// Module is a feature area within a project
type Module struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ProjectID   string    `json:"project_id"`
	Description *string   `json:"description"`
	LeadID      *string   `json:"lead_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ModuleInput struct {
	Name        string  `json:"name"`
	ProjectID   string  `json:"project_id"`
	Description *string `json:"description"`
	LeadID      *string `json:"lead_id"`
}

func (in ModuleInput) Validate() error {
	if err := checkRequired("name", in.Name, 255); err != nil {
		return err
	}
	if err := checkRequired("project_id", in.ProjectID, 255); err != nil {
		return err
	}
	return checkOptLen("lead_id", in.LeadID, 255)
}

type ModulePatch struct {
	Name        Opt[string] `json:"name"`
	Description Opt[string] `json:"description"`
	LeadID      Opt[string] `json:"lead_id"`
}

func (p ModulePatch) Validate() error {
	if err := checkPatchRequired("name", p.Name, 255); err != nil {
		return err
	}
	return checkPatchLen("lead_id", p.LeadID, 255)
}

func (p ModulePatch) Empty() bool {
	return !p.Name.Set && !p.Description.Set && !p.LeadID.Set
}

func (p ModulePatch) ApplyTo(m *Module) {
	if p.Name.Set {
		m.Name = p.Name.Value
	}
	p.Description.Apply(&m.Description)
	p.LeadID.Apply(&m.LeadID)
}

type ModuleRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (m *Module) Ref() *ModuleRef {
	return &ModuleRef{ID: m.ID, Name: m.Name}
}
