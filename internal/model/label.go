package model

import "time"

// Label tags tickets. A label belongs to one project.
type Label struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	ProjectID string    `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

type LabelInput struct {
	Name      string  `json:"name"`
	Color     *string `json:"color"`
	ProjectID string  `json:"project_id"`
}

func (in LabelInput) Validate() error {
	if err := checkRequired("name", in.Name, 100); err != nil {
		return err
	}
	if err := checkOptLen("color", in.Color, 7); err != nil {
		return err
	}
	return checkRequired("project_id", in.ProjectID, 255)
}

// LabelPatch updates name and color; a label cannot move between projects
type LabelPatch struct {
	Name  Opt[string] `json:"name"`
	Color Opt[string] `json:"color"`
}

func (p LabelPatch) Validate() error {
	if err := checkPatchRequired("name", p.Name, 100); err != nil {
		return err
	}
	return checkPatchLen("color", p.Color, 7)
}

func (p LabelPatch) Empty() bool {
	return !p.Name.Set && !p.Color.Set
}

func (p LabelPatch) ApplyTo(l *Label) {
	if p.Name.Set {
		l.Name = p.Name.Value
	}
	p.Color.Apply(&l.Color)
}

type LabelRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

func (l *Label) Ref() LabelRef {
	return LabelRef{ID: l.ID, Name: l.Name, Color: l.Color}
}
