package shaping

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
)

// ShapedRecord is an insertion-ordered map of field name to value. It
// marshals to a JSON object whose keys keep that order.
type ShapedRecord struct {
	keys   []string
	values map[string]any
}

// NewShapedRecord returns an empty record with room for n fields.
func NewShapedRecord(n int) ShapedRecord {
	return ShapedRecord{
		keys:   make([]string, 0, n),
		values: make(map[string]any, n),
	}
}

// Set adds key at the end, or replaces its value in place.
func (r *ShapedRecord) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r ShapedRecord) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (r ShapedRecord) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r ShapedRecord) Len() int { return len(r.keys) }

func (r ShapedRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SelectFields resolves a comma-separated field list against table. An empty
// list selects every field in declaration order; otherwise the requested
// order is kept, unknown or repeated names are skipped and the identifier is
// appended when it was not asked for.
func SelectFields[T any](ctx context.Context, fields string, table *FieldTable[T]) []Field[T] {
	if strings.TrimSpace(fields) == "" {
		return table.Fields()
	}

	var (
		selected []Field[T]
		dropped  []string
		seen     = make(map[string]bool)
	)
	for _, name := range strings.Split(fields, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		f, ok := table.Lookup(name)
		if !ok {
			dropped = append(dropped, name)
			continue
		}
		if seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		selected = append(selected, f)
	}

	if len(dropped) > 0 {
		logger.DebugWithContext(ctx, "Unknown shaping fields ignored").
			String("type", table.Name()).
			String("fields", fields).
			String("dropped", strings.Join(dropped, ",")).
			Log()
	}

	if id := table.Identifier(); !seen[id.Name] {
		selected = append(selected, id)
	}

	return selected
}

// Shape projects every item onto the selected fields.
func Shape[T any](ctx context.Context, items []T, fields string, table *FieldTable[T]) []ShapedRecord {
	selected := SelectFields(ctx, fields, table)

	out := make([]ShapedRecord, len(items))
	for i, item := range items {
		out[i] = project(item, selected)
	}
	return out
}

// ShapeOne projects a single item.
func ShapeOne[T any](ctx context.Context, item T, fields string, table *FieldTable[T]) ShapedRecord {
	return project(item, SelectFields(ctx, fields, table))
}

func project[T any](item T, selected []Field[T]) ShapedRecord {
	rec := NewShapedRecord(len(selected) + 1)
	for _, f := range selected {
		rec.Set(f.Name, f.Value(item))
	}
	return rec
}
