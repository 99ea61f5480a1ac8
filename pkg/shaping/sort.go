package shaping

import (
	"context"
	"slices"
	"strings"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
)

const descendingToken = "desc"

// SortKey is one validated ordering instruction.
type SortKey struct {
	Field      string
	Descending bool
}

// SortSpec is an ordered list of sort keys, primary key first.
type SortSpec []SortKey

func (s SortSpec) String() string {
	parts := make([]string, len(s))
	for i, k := range s {
		parts[i] = k.Field
		if k.Descending {
			parts[i] += " " + descendingToken
		}
	}
	return strings.Join(parts, ", ")
}

// ParseSortSpec splits a raw "field[ desc], ..." string into keys without
// validating the names.
func ParseSortSpec(spec string) SortSpec {
	var keys SortSpec
	for _, token := range strings.Split(spec, ",") {
		words := strings.Fields(token)
		if len(words) == 0 {
			continue
		}
		keys = append(keys, SortKey{
			Field:      words[0],
			Descending: len(words) > 1 && words[len(words)-1] == descendingToken,
		})
	}
	return keys
}

// BuildComparator resolves spec against table and returns a multi-key
// comparator together with the keys it kept. Unknown names are dropped, and
// when nothing is left the identifier ascending is used.
func BuildComparator[T any](ctx context.Context, spec string, table *FieldTable[T]) (Comparator[T], SortSpec) {
	var (
		keys    SortSpec
		fields  []Field[T]
		dropped []string
		seen    = make(map[string]bool)
	)

	for _, key := range ParseSortSpec(spec) {
		f, ok := table.Lookup(key.Field)
		if !ok {
			dropped = append(dropped, key.Field)
			continue
		}
		if seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		keys = append(keys, SortKey{Field: f.Name, Descending: key.Descending})
		fields = append(fields, f)
	}

	if len(dropped) > 0 {
		logger.DebugWithContext(ctx, "Unknown sort fields ignored").
			String("type", table.Name()).
			String("order_by", spec).
			String("dropped", strings.Join(dropped, ",")).
			Log()
	}

	if len(keys) == 0 {
		id := table.Identifier()
		keys = SortSpec{{Field: id.Name}}
		fields = []Field[T]{id}
	}

	desc := make([]bool, len(keys))
	for i, k := range keys {
		desc[i] = k.Descending
	}

	return func(a, b T) int {
		for i, f := range fields {
			c := f.Compare(a, b)
			if c == 0 {
				continue
			}
			if desc[i] {
				return -c
			}
			return c
		}
		return 0
	}, keys
}

// SortStable sorts items in place keeping the input order of equal items.
func SortStable[T any](items []T, compare Comparator[T]) {
	slices.SortStableFunc(items, compare)
}
