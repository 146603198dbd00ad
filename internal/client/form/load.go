package form

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Load seeds a draft and its snapshot from a decoded API record. Missing
// fields get defaults: "" for text, "0" for numbers (nested members
// included), false for booleans and a single empty slot for lists.
func Load(schema Schema, record map[string]any) (*Draft, *Snapshot) {
	v := newValues(schema)
	if id, ok := record["_id"].(string); ok {
		v.id = id
	}

	for _, f := range schema.Fields {
		raw, present := record[f.Name]
		switch {
		case f.Kind.scalar():
			v.text[f.Name] = scalarOrDefault(f.Kind, raw, present)
		case f.Kind == KindBool:
			v.bools[f.Name] = parseBool(raw)
		case f.Kind == KindNested:
			m := make(map[string]string, len(f.Sub))
			obj, _ := raw.(map[string]any)
			for _, s := range f.Sub {
				sub, ok := obj[s.Name]
				m[s.Name] = scalarOrDefault(s.Kind, sub, ok)
			}
			v.nested[f.Name] = m
		case f.Kind == KindList:
			l := formatList(raw)
			if len(l) == 0 {
				l = []string{""}
			}
			v.lists[f.Name] = l
		}
	}

	d := &Draft{values: v}
	return d, d.Snapshot()
}

// Blank returns a draft and snapshot for a record that does not exist yet.
func Blank(schema Schema) (*Draft, *Snapshot) {
	return Load(schema, nil)
}

// ToRecord converts a typed model into the generic record Load accepts.
func ToRecord(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var rec map[string]any
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}

func scalarOrDefault(k Kind, raw any, present bool) string {
	if present && raw != nil {
		return formatScalar(raw)
	}
	if k.numeric() {
		return "0"
	}
	return ""
}

func formatScalar(raw any) string {
	switch x := raw.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func parseBool(raw any) bool {
	switch x := raw.(type) {
	case bool:
		return x
	case string:
		b, _ := strconv.ParseBool(x)
		return b
	}
	return false
}

func formatList(raw any) []string {
	switch x := raw.(type) {
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			out = append(out, formatScalar(item))
		}
		return out
	}
	return nil
}
