// Package state provides the schema-backed state container threaded
// through a jokeflow graph run.
//
// A Schema declares the fields a workflow state may hold, each with a
// merge policy and a default value. Node functions propose changes as
// a Partial; the executor folds the partial into the current State with
// Apply, producing a new State value. Apply is pure: the receiver is
// never mutated, and a rejected partial leaves it untouched.
package state

import (
	"fmt"
)

// Policy governs how a field in a Partial is folded into State.
type Policy int

const (
	// Replace overwrites the previous value. Default for scalars.
	Replace Policy = iota

	// Append concatenates new elements onto the existing sequence,
	// preserving order and duplicates. Append fields hold []any.
	Append
)

// String returns the policy name for logging and error messages.
func (p Policy) String() string {
	switch p {
	case Replace:
		return "replace"
	case Append:
		return "append"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// Field declares a single state field.
type Field struct {
	// Name identifies the field in partial updates.
	Name string
	// Policy is the merge policy applied by State.Apply.
	Policy Policy
	// Default is the value the field starts with when not supplied
	// at construction time. Append fields default to an empty sequence
	// regardless of this value unless a []any is given.
	Default any
}

// Schema is an immutable set of field declarations.
// Build one with NewSchema at graph-construction time and share it
// across runs; a Schema is safe for concurrent use.
type Schema struct {
	fields map[string]Field
	order  []string
}

// NewSchema creates a schema from the given field declarations.
//
// Panics if a field name is empty or declared twice. Schema definition
// is a build-time concern, so misdeclarations are programmer errors.
func NewSchema(fields ...Field) *Schema {
	s := &Schema{fields: make(map[string]Field, len(fields))}
	for _, f := range fields {
		if f.Name == "" {
			panic("state: field name cannot be empty")
		}
		if _, exists := s.fields[f.Name]; exists {
			panic(fmt.Sprintf("state: duplicate field: %s", f.Name))
		}
		if f.Policy == Append {
			if _, ok := f.Default.([]any); !ok {
				f.Default = []any(nil)
			}
		}
		s.fields[f.Name] = f
		s.order = append(s.order, f.Name)
	}
	return s
}

// Has returns true if the schema declares the field.
func (s *Schema) Has(name string) bool {
	_, ok := s.fields[name]
	return ok
}

// PolicyOf returns the merge policy for a declared field.
// The second return is false for undeclared fields.
func (s *Schema) PolicyOf(name string) (Policy, bool) {
	f, ok := s.fields[name]
	return f.Policy, ok
}

// Fields returns the declared field names in declaration order.
func (s *Schema) Fields() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Partial is the set of field assignments a node function proposes.
// For Replace fields the value is the replacement; for Append fields
// the value is the slice of elements to append ([]any), never a
// replacement for the whole sequence.
type Partial map[string]any

// State is a fully-defined snapshot of the schema's fields.
//
// State has value semantics: Apply returns a new State and never
// mutates its receiver, so snapshots taken at different steps remain
// independent. The zero State is not usable; construct with New.
type State struct {
	schema *Schema
	values map[string]any
}

// New creates a State with every schema field populated, taking values
// from initial where present and schema defaults otherwise.
//
// Returns a SchemaError if initial references an undeclared field.
func New(schema *Schema, initial Partial) (State, error) {
	for name := range initial {
		if !schema.Has(name) {
			return State{}, &SchemaError{Field: name}
		}
	}

	values := make(map[string]any, len(schema.order))
	for _, name := range schema.order {
		f := schema.fields[name]
		if v, ok := initial[name]; ok {
			values[name] = v
			continue
		}
		if f.Policy == Append {
			values[name] = cloneSeq(f.Default.([]any))
			continue
		}
		values[name] = f.Default
	}
	return State{schema: schema, values: values}, nil
}

// MustNew is New but panics on error. Intended for graph assembly code
// where the initial values are literals.
func MustNew(schema *Schema, initial Partial) State {
	s, err := New(schema, initial)
	if err != nil {
		panic(err)
	}
	return s
}

// Apply folds a partial update into the state, returning the merged
// state. Replace fields take the new value; Append fields gain the
// partial's elements at the end of the existing sequence.
//
// Apply is pure: it depends only on its inputs, and the receiver is
// returned unchanged (as the second value's basis) when the partial
// references an undeclared field.
func (s State) Apply(p Partial) (State, error) {
	for name := range p {
		if !s.schema.Has(name) {
			return s, &SchemaError{Field: name}
		}
	}
	if len(p) == 0 {
		return s, nil
	}

	values := make(map[string]any, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}

	for name, v := range p {
		f := s.schema.fields[name]
		if f.Policy == Append {
			values[name] = appendSeq(values[name], v)
			continue
		}
		values[name] = v
	}
	return State{schema: s.schema, values: values}, nil
}

// Schema returns the schema this state was built from.
func (s State) Schema() *Schema {
	return s.schema
}

// Get returns the raw value of a field and whether it is declared.
func (s State) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// String returns the field's value as a string, or "" if the field is
// undeclared or holds another type.
func (s State) String(name string) string {
	v, _ := s.values[name].(string)
	return v
}

// Int returns the field's value as an int, or 0 if the field is
// undeclared or holds another type.
func (s State) Int(name string) int {
	switch v := s.values[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

// Bool returns the field's value as a bool, or false otherwise.
func (s State) Bool(name string) bool {
	v, _ := s.values[name].(bool)
	return v
}

// Seq returns the ordered sequence held by an Append field.
// The returned slice must not be modified.
func (s State) Seq(name string) []any {
	v, _ := s.values[name].([]any)
	return v
}

// Len returns the number of elements in an Append field's sequence.
func (s State) Len(name string) int {
	return len(s.Seq(name))
}

// appendSeq concatenates the partial's elements onto the existing
// sequence without aliasing either input slice.
func appendSeq(existing, update any) []any {
	prev, _ := existing.([]any)
	var next []any
	switch u := update.(type) {
	case []any:
		next = u
	case nil:
		next = nil
	default:
		// A single element is appended as-is.
		next = []any{u}
	}

	merged := make([]any, 0, len(prev)+len(next))
	merged = append(merged, prev...)
	merged = append(merged, next...)
	return merged
}

// cloneSeq copies a default sequence so states never share backing arrays.
func cloneSeq(src []any) []any {
	if len(src) == 0 {
		return []any(nil)
	}
	out := make([]any, len(src))
	copy(out, src)
	return out
}
