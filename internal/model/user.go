package model

import "time"

// User is a person tickets can be assigned to
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	AvatarURL *string   `json:"avatar_url"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserInput struct {
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	AvatarURL *string `json:"avatar_url"`
	Color     *string `json:"color"`
}

func (in UserInput) Validate() error {
	if err := checkRequired("name", in.Name, 255); err != nil {
		return err
	}
	if err := checkOptLen("email", in.Email, 255); err != nil {
		return err
	}
	if err := checkOptLen("avatar_url", in.AvatarURL, 500); err != nil {
		return err
	}
	return checkOptLen("color", in.Color, 7)
}

type UserPatch struct {
	Name      Opt[string] `json:"name"`
	Email     Opt[string] `json:"email"`
	AvatarURL Opt[string] `json:"avatar_url"`
	Color     Opt[string] `json:"color"`
}

func (p UserPatch) Validate() error {
	if err := checkPatchRequired("name", p.Name, 255); err != nil {
		return err
	}
	if err := checkPatchLen("email", p.Email, 255); err != nil {
		return err
	}
	if err := checkPatchLen("avatar_url", p.AvatarURL, 500); err != nil {
		return err
	}
	return checkPatchLen("color", p.Color, 7)
}

func (p UserPatch) Empty() bool {
	return !p.Name.Set && !p.Email.Set && !p.AvatarURL.Set && !p.Color.Set
}

func (p UserPatch) ApplyTo(u *User) {
	if p.Name.Set {
		u.Name = p.Name.Value
	}
	p.Email.Apply(&u.Email)
	p.AvatarURL.Apply(&u.AvatarURL)
	p.Color.Apply(&u.Color)
}

type UserRef struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	AvatarURL *string `json:"avatar_url"`
	Color     *string `json:"color"`
}

func (u *User) Ref() *UserRef {
	return &UserRef{ID: u.ID, Name: u.Name, Email: u.Email, AvatarURL: u.AvatarURL, Color: u.Color}
}
