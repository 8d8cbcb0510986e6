// Package form provides generic keyed state for form inputs. It is purely a
// state container: no validation happens here, values are replaced per field
// according to the field kind and nothing else changes.
package form

import "fmt"

// Kind determines how a change event updates a field's value. One variant
// per input kind, each carrying its own update rule.
type Kind string

const (
	KindText     Kind = "text"
	KindCheckbox Kind = "checkbox"
	KindRadio    Kind = "radio"
)

// apply maps a raw change event to the stored value for this kind.
func (k Kind) apply(ev ChangeEvent) interface{} {
	switch k {
	case KindCheckbox:
		return ev.Checked
	case KindRadio:
		return ev.Value
	default:
		return ev.Value
	}
}

// initial returns the default value a field of this kind resets to.
func (k Kind) initial() interface{} {
	if k == KindCheckbox {
		return false
	}
	return ""
}

// ChangeEvent is the raw input event dispatched by the rendering layer.
// Checked is only meaningful for checkbox fields.
type ChangeEvent struct {
	Value   string `json:"value"`
	Checked bool   `json:"checked"`
}

// Definition declares one field of a form.
type Definition struct {
	Name string
	Kind Kind
}

// State is a snapshot of all field values. Every declared field is always
// present.
type State map[string]interface{}

// String returns the field's value as a string, or "" for non-string values.
func (s State) String(name string) string {
	v, _ := s[name].(string)
	return v
}

// Bool returns the field's value as a bool, or false for non-bool values.
func (s State) Bool(name string) bool {
	v, _ := s[name].(bool)
	return v
}

// Store owns the mutable field state for one form. All mutation goes through
// ApplyChange or Reset.
type Store struct {
	kinds map[string]Kind
	state State
}

// NewStore creates a store with every declared field set to its initial value.
func NewStore(defs []Definition) *Store {
	s := &Store{
		kinds: make(map[string]Kind, len(defs)),
		state: make(State, len(defs)),
	}
	for _, def := range defs {
		s.kinds[def.Name] = def.Kind
		s.state[def.Name] = def.Kind.initial()
	}
	return s
}

// ApplyChange replaces the named field's value according to its kind. All
// other fields retain their prior value.
func (s *Store) ApplyChange(name string, ev ChangeEvent) error {
	kind, ok := s.kinds[name]
	if !ok {
		return fmt.Errorf("unknown field %q", name)
	}
	s.state[name] = kind.apply(ev)
	return nil
}

// Reset restores every field to its original initial value.
func (s *Store) Reset() {
	for name, kind := range s.kinds {
		s.state[name] = kind.initial()
	}
}

// State returns a copy of the current field state.
func (s *Store) State() State {
	out := make(State, len(s.state))
	for k, v := range s.state {
		out[k] = v
	}
	return out
}

// String returns the current value of a text or radio field.
func (s *Store) String(name string) string {
	return s.state.String(name)
}
