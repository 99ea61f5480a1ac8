// Package shaping turns a typed collection plus client query parameters into
// sorted, filtered, paged, field-selected and optionally hypermedia-linked
// documents.
//
// Every operation works against a FieldTable, an explicit per-type list of
// named accessors built once at startup. Nothing here uses reflection.
package shaping

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
)

// LinksField is the record key reserved for per-record hypermedia links.
const LinksField = "Links"

var (
	ErrMissingIdentifier = errors.New("identifier field is not declared")
	ErrReservedField     = errors.New("field name is reserved")
	ErrDuplicateField    = errors.New("field name declared twice")
	ErrInvalidField      = errors.New("field is missing a name or accessor")
)

// Comparator orders two values the way cmp.Compare does.
type Comparator[T any] func(a, b T) int

// Field is a named, readable and comparable attribute of T.
type Field[T any] struct {
	Name    string
	Value   func(T) any
	Compare Comparator[T]
}

// Ordered declares a field whose value is a cmp.Ordered type.
func Ordered[T any, V cmp.Ordered](name string, get func(T) V) Field[T] {
	return Custom(name, get, cmp.Compare[V])
}

// OptionalOrdered declares a nullable cmp.Ordered field. Nil sorts first.
func OptionalOrdered[T any, V cmp.Ordered](name string, get func(T) *V) Field[T] {
	return OptionalCustom(name, get, cmp.Compare[V])
}

// Custom declares a field compared with an explicit function, typically a
// method expression such as time.Time.Compare or decimal.Decimal.Cmp.
func Custom[T, V any](name string, get func(T) V, compare func(a, b V) int) Field[T] {
	return Field[T]{
		Name:    name,
		Value:   func(item T) any { return get(item) },
		Compare: func(a, b T) int { return compare(get(a), get(b)) },
	}
}

// OptionalCustom is Custom for pointer-valued fields. Nil sorts first and is
// shaped as a JSON null.
func OptionalCustom[T, V any](name string, get func(T) *V, compare func(a, b V) int) Field[T] {
	return Field[T]{
		Name: name,
		Value: func(item T) any {
			if v := get(item); v != nil {
				return *v
			}
			return nil
		},
		Compare: func(a, b T) int {
			x, y := get(a), get(b)
			switch {
			case x == nil && y == nil:
				return 0
			case x == nil:
				return -1
			case y == nil:
				return 1
			}
			return compare(*x, *y)
		},
	}
}

// CompareBool orders false before true.
func CompareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// FieldTable is the capability table of T: its fields in declaration order,
// a case-insensitive index and the identifier used for default ordering and
// links. It is read-only once built and safe for concurrent use.
type FieldTable[T any] struct {
	name   string
	id     int
	fields []Field[T]
	index  map[string]int
}

// NewFieldTable validates and indexes fields. identifier must name one of
// them and no field may be called Links.
func NewFieldTable[T any](name, identifier string, fields ...Field[T]) (*FieldTable[T], error) {
	t := &FieldTable[T]{
		name:   name,
		id:     -1,
		fields: make([]Field[T], 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	for _, f := range fields {
		if strings.TrimSpace(f.Name) == "" || f.Value == nil || f.Compare == nil {
			return nil, fmt.Errorf("%s: %w", name, ErrInvalidField)
		}

		key := strings.ToLower(f.Name)
		if key == strings.ToLower(LinksField) {
			return nil, fmt.Errorf("%s.%s: %w", name, f.Name, ErrReservedField)
		}
		if _, exists := t.index[key]; exists {
			return nil, fmt.Errorf("%s.%s: %w", name, f.Name, ErrDuplicateField)
		}

		t.index[key] = len(t.fields)
		t.fields = append(t.fields, f)
	}

	pos, ok := t.index[strings.ToLower(identifier)]
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", name, identifier, ErrMissingIdentifier)
	}
	t.id = pos

	return t, nil
}

// MustNewFieldTable is NewFieldTable for package-level tables; a broken
// table stops the process at startup.
func MustNewFieldTable[T any](name, identifier string, fields ...Field[T]) *FieldTable[T] {
	t, err := NewFieldTable(name, identifier, fields...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name is the type name used in diagnostics.
func (t *FieldTable[T]) Name() string { return t.name }

// Identifier returns the identifier field.
func (t *FieldTable[T]) Identifier() Field[T] { return t.fields[t.id] }

// Lookup finds a field by case-insensitive name.
func (t *FieldTable[T]) Lookup(name string) (Field[T], bool) {
	pos, ok := t.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Field[T]{}, false
	}
	return t.fields[pos], true
}

// Fields returns the fields in declaration order.
func (t *FieldTable[T]) Fields() []Field[T] {
	out := make([]Field[T], len(t.fields))
	copy(out, t.fields)
	return out
}

