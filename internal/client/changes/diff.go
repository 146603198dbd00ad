// Package changes compares an edited draft with its snapshot and describes
// the differences for the save confirmation.
package changes

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/pharmadmin/internal/client/form"
)

// CurrencySymbol prefixes currency values in descriptions.
const CurrencySymbol = "₹"

// Record is the ordered list of change descriptions.
type Record []string

func (r Record) Empty() bool { return len(r) == 0 }

// Diff describes every difference between snap and draft plus one entry per
// pending asset. Entries come in a fixed order: scalar fields, nested
// members, booleans, lists, then assets; fields follow schema order within
// each group.
func Diff(snap *form.Snapshot, draft *form.Draft, pending []form.PendingAsset) Record {
	schema := draft.Schema()
	var out Record

	for _, f := range schema.Fields {
		if !isScalar(f.Kind) {
			continue
		}
		old, cur := snap.Value(f.Name), draft.Value(f.Name)
		if sameScalar(f.Kind, old, cur) {
			continue
		}
		out = append(out, describe(f.DisplayName(), f.Kind, cur))
	}

	for _, f := range schema.Fields {
		if f.Kind != form.KindNested {
			continue
		}
		for _, s := range f.Sub {
			old, cur := snap.Nested(f.Name, s.Name), draft.Nested(f.Name, s.Name)
			if sameScalar(s.Kind, old, cur) {
				continue
			}
			out = append(out, describe(f.DisplayName()+" "+strings.ToLower(form.Humanize(s.Name)), s.Kind, cur))
		}
	}

	for _, f := range schema.Fields {
		if f.Kind != form.KindBool {
			continue
		}
		if cur := draft.Bool(f.Name); cur != snap.Bool(f.Name) {
			out = append(out, f.DisplayName()+" to "+yesNo(cur))
		}
	}

	for _, f := range schema.Fields {
		if f.Kind != form.KindList {
			continue
		}
		old, cur := form.StripEmpty(snap.List(f.Name)), form.StripEmpty(draft.List(f.Name))
		if slices.Equal(old, cur) {
			continue
		}
		out = append(out, fmt.Sprintf("%s (%s)", f.DisplayName(), items(len(cur))))
	}

	for _, p := range pending {
		out = append(out, p.Slot.DisplayName(schema)+" will be updated")
	}
	return out
}

func isScalar(k form.Kind) bool {
	return k == form.KindText || k == form.KindNumber || k == form.KindCurrency
}

// sameScalar compares form strings; numeric fields compare by value so "10"
// and "10.0" are equal, and a blank number counts as 0 the way Body sends it.
func sameScalar(k form.Kind, a, b string) bool {
	if a == b {
		return true
	}
	if k != form.KindNumber && k != form.KindCurrency {
		return false
	}
	x, errA := parseNumber(a)
	y, errB := parseNumber(b)
	return errA == nil && errB == nil && x == y
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func describe(label string, k form.Kind, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return label + " cleared"
	}
	if k == form.KindCurrency {
		value = CurrencySymbol + value
	}
	return label + " to " + value
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func items(n int) string {
	if n == 1 {
		return "1 item"
	}
	return strconv.Itoa(n) + " items"
}
