package model

import "encoding/json"

// Opt is a field of a partial update. Set is false when the key was absent
// from the request; Null is true when the key was present with a JSON null.
type Opt[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns an Opt holding v
func Some[T any](v T) Opt[T] {
	return Opt[T]{Set: true, Value: v}
}

// Null returns an Opt that clears the field
func Null[T any]() Opt[T] {
	return Opt[T]{Set: true, Null: true}
}

func (o *Opt[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.Value)
}

// Ptr returns nil for an absent or null field, otherwise a pointer to the value
func (o Opt[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// Apply writes the update into dst when the field was set
func (o Opt[T]) Apply(dst **T) {
	if o.Set {
		*dst = o.Ptr()
	}
}
