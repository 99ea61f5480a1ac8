package shaping

import (
	"context"
	"time"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
)

// Source supplies items that already satisfy pred, ordered by compare.
type Source[T any] interface {
	FetchFilteredSorted(ctx context.Context, pred Predicate[T], compare Comparator[T]) ([]T, error)
}

// Counter is implemented by sources that can count matches without
// materialising them.
type Counter[T any] interface {
	Count(ctx context.Context, pred Predicate[T]) (int64, error)
}

// Query holds the parsed collection parameters of one request.
type Query[T any] struct {
	PageNumber int
	PageSize   int
	OrderBy    string
	Fields     string
	Predicate  Predicate[T]
}

// Result is a page of typed items and their shaped projections, index for
// index.
type Result[T any] struct {
	Page   PagedResult[T]
	Shaped []ShapedRecord
	Sort   SortSpec
}

// Run executes filter, sort, page and shape against src.
func Run[T any](ctx context.Context, src Source[T], table *FieldTable[T], q Query[T]) (*Result[T], error) {
	start := time.Now()

	pred := q.Predicate
	if pred == nil {
		pred = All[T]()
	}
	compare, spec := BuildComparator(ctx, q.OrderBy, table)

	items, err := src.FetchFilteredSorted(ctx, pred, compare)
	if err != nil {
		return nil, err
	}

	total := int64(len(items))
	if counter, ok := src.(Counter[T]); ok {
		if total, err = counter.Count(ctx, pred); err != nil {
			return nil, err
		}
	}

	page := PaginateWithTotal(items, q.PageNumber, q.PageSize, total)
	shaped := Shape(ctx, page.Items, q.Fields, table)

	logger.DebugWithContext(ctx, "Collection shaped").
		String("type", table.Name()).
		String("sort", spec.String()).
		Int("page", page.CurrentPage).
		Int("page_size", page.PageSize).
		Int64("total", page.TotalCount).
		Int("returned_count", len(page.Items)).
		Duration(time.Since(start)).
		Log()

	return &Result[T]{Page: page, Shaped: shaped, Sort: spec}, nil
}

// SliceSource serves an in-memory slice. The slice is never modified.
type SliceSource[T any] []T

func (s SliceSource[T]) FetchFilteredSorted(_ context.Context, pred Predicate[T], compare Comparator[T]) ([]T, error) {
	return FilterSort(s, pred, compare), nil
}

// FilterSort returns a filtered, stably sorted copy of items.
func FilterSort[T any](items []T, pred Predicate[T], compare Comparator[T]) []T {
	out := Filter(items, pred)
	if compare != nil {
		SortStable(out, compare)
	}
	return out
}
