package model

import "time"

// Project groups tickets, labels, cycles and modules
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Identifier  string    `json:"identifier"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectInput is the body of a create request
type ProjectInput struct {
	Name        string  `json:"name"`
	Identifier  string  `json:"identifier"`
	Description *string `json:"description"`
}

func (in ProjectInput) Validate() error {
	if err := checkRequired("name", in.Name, 255); err != nil {
		return err
	}
	return checkRequired("identifier", in.Identifier, 10)
}

// ProjectPatch is the body of a partial update
type ProjectPatch struct {
	Name        Opt[string] `json:"name"`
	Identifier  Opt[string] `json:"identifier"`
	Description Opt[string] `json:"description"`
}

func (p ProjectPatch) Validate() error {
	if err := checkPatchRequired("name", p.Name, 255); err != nil {
		return err
	}
	return checkPatchRequired("identifier", p.Identifier, 10)
}

// Empty reports whether the patch changes nothing
func (p ProjectPatch) Empty() bool {
	return !p.Name.Set && !p.Identifier.Set && !p.Description.Set
}

// ApplyTo copies the set fields onto pr
func (p ProjectPatch) ApplyTo(pr *Project) {
	if p.Name.Set {
		pr.Name = p.Name.Value
	}
	if p.Identifier.Set {
		pr.Identifier = p.Identifier.Value
	}
	p.Description.Apply(&pr.Description)
}

// ProjectRef is the nested form of a project inside a ticket view
type ProjectRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
}

// Ref returns the nested form of the project
func (p *Project) Ref() *ProjectRef {
	return &ProjectRef{ID: p.ID, Name: p.Name, Identifier: p.Identifier}
}
