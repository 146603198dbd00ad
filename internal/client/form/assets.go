package form

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/google/uuid"
)

var ErrNotAssetField = errors.New("field does not take uploads")

// Slot addresses the value an uploaded file replaces: a scalar field when
// Index is -1, otherwise one item of a list field.
type Slot struct {
	Field string
	Index int
}

// MainSlot addresses a scalar asset field such as mainImage.
func MainSlot(field string) Slot { return Slot{Field: field, Index: -1} }

func (s Slot) String() string {
	if s.Index < 0 {
		return s.Field
	}
	return s.Field + "[" + strconv.Itoa(s.Index) + "]"
}

// DisplayName names the slot for change descriptions, e.g. "Main Image" or
// "Images #2".
func (s Slot) DisplayName(schema Schema) string {
	label := Humanize(s.Field)
	if f, ok := schema.Field(s.Field); ok {
		label = f.DisplayName()
	}
	if s.Index < 0 {
		return label
	}
	return label + " #" + strconv.Itoa(s.Index+1)
}

// PendingAsset is a picked file waiting to be uploaded.
type PendingAsset struct {
	Slot    Slot
	Name    string
	Content []byte
	// Preview is a local handle for the pick; it never reaches the API.
	Preview string
}

// Assets tracks pending uploads of one edit session, at most one per slot.
type Assets struct {
	schema Schema
	items  map[Slot]PendingAsset
}

func NewAssets(schema Schema) *Assets {
	return &Assets{schema: schema, items: map[Slot]PendingAsset{}}
}

// Attach records a file for slot, replacing any earlier pick. List slots must
// exist in the draft.
func (a *Assets) Attach(d *Draft, slot Slot, name string, content []byte) (PendingAsset, error) {
	f, ok := a.schema.Field(slot.Field)
	if !ok {
		return PendingAsset{}, fmt.Errorf("%q: %w", slot.Field, ErrUnknownField)
	}
	if !f.Asset {
		return PendingAsset{}, fmt.Errorf("%q: %w", slot.Field, ErrNotAssetField)
	}
	switch {
	case f.Kind == KindList:
		if n := len(d.lists[f.Name]); slot.Index < 0 || slot.Index >= n {
			return PendingAsset{}, fmt.Errorf("%s of %d: %w", slot, n, ErrIndexOutOfRange)
		}
	case slot.Index >= 0:
		return PendingAsset{}, fmt.Errorf("%s: %w", slot, ErrWrongKind)
	}

	p := PendingAsset{Slot: slot, Name: name, Content: content, Preview: uuid.NewString()}
	a.items[slot] = p
	return p, nil
}

func (a *Assets) Detach(slot Slot) bool {
	_, ok := a.items[slot]
	delete(a.items, slot)
	return ok
}

// Removed keeps list slots aligned after Draft.RemoveListItem: the pick for
// the removed slot is dropped and later picks move down by one.
func (a *Assets) Removed(field string, index int) {
	moved := map[Slot]PendingAsset{}
	for s, p := range a.items {
		if s.Field != field || s.Index < index {
			continue
		}
		delete(a.items, s)
		if s.Index > index {
			s.Index--
			p.Slot = s
			moved[s] = p
		}
	}
	for s, p := range moved {
		a.items[s] = p
	}
}

func (a *Assets) Len() int { return len(a.items) }

func (a *Assets) Clear() { clear(a.items) }

// List returns the pending assets in schema field order, list slots by index.
func (a *Assets) List() []PendingAsset {
	out := make([]PendingAsset, 0, len(a.items))
	for _, p := range a.items {
		out = append(out, p)
	}
	slices.SortFunc(out, func(x, y PendingAsset) int {
		if c := a.schema.index(x.Slot.Field) - a.schema.index(y.Slot.Field); c != 0 {
			return c
		}
		return x.Slot.Index - y.Slot.Index
	})
	return out
}
