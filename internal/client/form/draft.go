package form

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrUnknownField    = errors.New("unknown field")
	ErrWrongKind       = errors.New("wrong field kind")
	ErrIndexOutOfRange = errors.New("list index out of range")
	ErrInvalidNumber   = errors.New("not a valid number")
)

// Draft is the mutable in-progress edit of one record. Mutators never touch
// the Snapshot taken alongside it.
type Draft struct {
	values
}

// Snapshot is the frozen baseline a Draft is compared against.
type Snapshot struct {
	values
}

// Draft returns a fresh mutable copy of the snapshot.
func (s *Snapshot) Draft() *Draft {
	return &Draft{values: s.values.clone()}
}

// Clone returns an independent copy of the draft.
func (d *Draft) Clone() *Draft {
	return &Draft{values: d.values.clone()}
}

// Snapshot freezes the current state of the draft.
func (d *Draft) Snapshot() *Snapshot {
	return &Snapshot{values: d.values.clone()}
}

// SetField sets a text, number or currency field to its form string.
func (d *Draft) SetField(name, value string) error {
	if _, err := d.field(name, KindText, KindNumber, KindCurrency); err != nil {
		return err
	}
	d.text[name] = value
	return nil
}

func (d *Draft) SetBool(name string, value bool) error {
	if _, err := d.field(name, KindBool); err != nil {
		return err
	}
	d.bools[name] = value
	return nil
}

func (d *Draft) SetNestedField(parent, sub, value string) error {
	f, err := d.field(parent, KindNested)
	if err != nil {
		return err
	}
	if _, ok := f.sub(sub); !ok {
		return fmt.Errorf("%q.%q: %w", parent, sub, ErrUnknownField)
	}
	d.nested[parent][sub] = value
	return nil
}

func (d *Draft) SetListItem(name string, index int, value string) error {
	if _, err := d.field(name, KindList); err != nil {
		return err
	}
	l := d.lists[name]
	if index < 0 || index >= len(l) {
		return fmt.Errorf("%s[%d] of %d: %w", name, index, len(l), ErrIndexOutOfRange)
	}
	l[index] = value
	return nil
}

// AppendListItem adds an empty slot at the end of a list field and returns
// its index.
func (d *Draft) AppendListItem(name string) (int, error) {
	if _, err := d.field(name, KindList); err != nil {
		return 0, err
	}
	d.lists[name] = append(d.lists[name], "")
	return len(d.lists[name]) - 1, nil
}

// RemoveListItem deletes one slot. Removing the last slot leaves the list
// empty; DisplayList pads it back for display.
func (d *Draft) RemoveListItem(name string, index int) error {
	if _, err := d.field(name, KindList); err != nil {
		return err
	}
	l := d.lists[name]
	if index < 0 || index >= len(l) {
		return fmt.Errorf("%s[%d] of %d: %w", name, index, len(l), ErrIndexOutOfRange)
	}
	d.lists[name] = slices.Delete(l, index, index+1)
	return nil
}

// DisplayList returns the list with at least one slot.
func (d *Draft) DisplayList(name string) []string {
	l := d.List(name)
	if len(l) == 0 {
		return []string{""}
	}
	return l
}

// SetSlot writes value into the field or list slot addressed by slot.
func (d *Draft) SetSlot(slot Slot, value string) error {
	if slot.Index < 0 {
		return d.SetField(slot.Field, value)
	}
	return d.SetListItem(slot.Field, slot.Index, value)
}

// Body parses the draft into the JSON body sent to the API. Numbers become
// float64, empty list slots are dropped and an empty numeric field counts as
// zero.
func (d *Draft) Body() (map[string]any, error) {
	body := make(map[string]any, len(d.schema.Fields))
	for _, f := range d.schema.Fields {
		switch {
		case f.Kind.scalar():
			v, err := parseScalar(f.Kind, d.text[f.Name])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.DisplayName(), err)
			}
			body[f.Name] = v
		case f.Kind == KindBool:
			body[f.Name] = d.bools[f.Name]
		case f.Kind == KindNested:
			m := make(map[string]any, len(f.Sub))
			for _, s := range f.Sub {
				v, err := parseScalar(s.Kind, d.nested[f.Name][s.Name])
				if err != nil {
					return nil, fmt.Errorf("%s %s: %w", f.DisplayName(), s.Name, err)
				}
				m[s.Name] = v
			}
			body[f.Name] = m
		case f.Kind == KindList:
			body[f.Name] = StripEmpty(d.lists[f.Name])
		}
	}
	return body, nil
}

func parseScalar(k Kind, s string) (any, error) {
	if !k.numeric() {
		return s, nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return float64(0), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", s, ErrInvalidNumber)
	}
	return f, nil
}

// StripEmpty returns the non-empty items of l, never nil.
func StripEmpty(l []string) []string {
	out := make([]string, 0, len(l))
	for _, s := range l {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
