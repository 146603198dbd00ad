package form

import (
	"fmt"
	"maps"
	"slices"
)

// values is the storage shared by Draft and Snapshot. Every field of the
// schema has an entry in exactly one of the maps after Load.
type values struct {
	schema Schema
	id     string
	text   map[string]string
	bools  map[string]bool
	nested map[string]map[string]string
	lists  map[string][]string
}

func newValues(schema Schema) values {
	return values{
		schema: schema,
		text:   map[string]string{},
		bools:  map[string]bool{},
		nested: map[string]map[string]string{},
		lists:  map[string][]string{},
	}
}

func (v values) clone() values {
	c := newValues(v.schema)
	c.id = v.id
	maps.Copy(c.text, v.text)
	maps.Copy(c.bools, v.bools)
	for k, m := range v.nested {
		c.nested[k] = maps.Clone(m)
	}
	for k, l := range v.lists {
		c.lists[k] = slices.Clone(l)
	}
	return c
}

// ID is the record identifier, empty for a record not yet created.
func (v values) ID() string { return v.id }

func (v values) Schema() Schema { return v.schema }

// Value returns the form string of a text, number or currency field.
func (v values) Value(name string) string { return v.text[name] }

func (v values) Bool(name string) bool { return v.bools[name] }

func (v values) Nested(parent, sub string) string { return v.nested[parent][sub] }

// List returns a copy of a list field, including empty slots.
func (v values) List(name string) []string { return slices.Clone(v.lists[name]) }

func (v values) field(name string, kinds ...Kind) (Field, error) {
	f, ok := v.schema.Field(name)
	if !ok {
		return Field{}, fmt.Errorf("%q: %w", name, ErrUnknownField)
	}
	if !slices.Contains(kinds, f.Kind) {
		return Field{}, fmt.Errorf("%q is %s: %w", name, f.Kind, ErrWrongKind)
	}
	return f, nil
}
