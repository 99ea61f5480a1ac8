package service

import (
	"context"
	"encoding/json"
	"errors"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	apperrors "github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/errors"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/shaping"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/validation"
)

// Representation describes how the caller wants a resource rendered.
type Representation struct {
	MediaType shaping.MediaType
	Fields    string
	BaseURL   string
}

// CollectionResponse is one rendered page. Body is either the shaped
// records or the linked envelope; Records are always the shaped records, for
// renderers such as CSV.
type CollectionResponse struct {
	Body       any
	Records    []shaping.ShapedRecord
	Pagination shaping.MetaData
}

// loaderSource adapts a repository loader to shaping.Source. Filtering and
// ordering happen in memory on the loaded DTOs.
type loaderSource[T any] func(ctx context.Context) ([]T, error)

func (l loaderSource[T]) FetchFilteredSorted(ctx context.Context, pred shaping.Predicate[T], compare shaping.Comparator[T]) ([]T, error) {
	items, err := l(ctx)
	if err != nil {
		return nil, err
	}
	return shaping.FilterSort(items, pred, compare), nil
}

func renderCollection[T any](ctx context.Context, src shaping.Source[T], table *shaping.FieldTable[T], q shaping.Query[T], mt shaping.MediaType, links shaping.LinkBuilder[T]) (*CollectionResponse, error) {
	result, err := shaping.Run(ctx, src, table, q)
	if err != nil {
		return nil, err
	}

	linked, err := shaping.Decorate(result.Shaped, result.Page.Items, mt, links, q.Fields)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to build collection links").
			String("type", table.Name()).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &CollectionResponse{
		Body:       linked.Body(),
		Records:    result.Shaped,
		Pagination: result.Page.MetaData,
	}, nil
}

// renderEntity shapes one item and, for hypermedia media types, adds its
// links under the reserved Links key.
func renderEntity[T any](ctx context.Context, item T, table *shaping.FieldTable[T], rep Representation, links shaping.LinkBuilder[T]) (shaping.ShapedRecord, error) {
	record := shaping.ShapeOne(ctx, item, rep.Fields, table)
	if !rep.MediaType.IsHateoas() {
		return record, nil
	}

	entityLinks, err := links.EntityLinks(item, rep.Fields)
	if err != nil {
		return shaping.ShapedRecord{}, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	record.Set(shaping.LinksField, entityLinks)
	return record, nil
}

// applyPatch applies an RFC 6902 document to doc and validates the result.
func applyPatch[D any](v *validator.Validate, doc D, patch []byte) (D, error) {
	var patched D

	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return patched, apperrors.WrapError(apperrors.ErrInvalidPatch, err)
	}

	original, err := json.Marshal(doc)
	if err != nil {
		return patched, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	modified, err := ops.Apply(original)
	if err != nil {
		return patched, apperrors.WrapError(apperrors.ErrInvalidPatch, err)
	}

	if err := json.Unmarshal(modified, &patched); err != nil {
		return patched, apperrors.WrapError(apperrors.ErrInvalidPatch, err)
	}

	if err := validateStruct(v, patched); err != nil {
		return patched, err
	}
	return patched, nil
}

func validateStruct(v *validator.Validate, s any) error {
	if err := v.Struct(s); err != nil {
		if fields := validation.Messages(err); fields != nil {
			return apperrors.WithFields(apperrors.WrapError(apperrors.ErrValidation, err), fields)
		}
		return apperrors.WrapError(apperrors.ErrValidation, err)
	}
	return nil
}

// lookupError maps a repository lookup failure to notFound or an internal
// error.
func lookupError(err error, notFound *apperrors.DomainError) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if apperrors.IsDomainError(err) {
		return err
	}
	return apperrors.WrapError(apperrors.ErrInternal, err)
}
