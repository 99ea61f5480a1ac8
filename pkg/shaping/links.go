package shaping

import (
	"errors"
	"fmt"
)

var ErrRecordMismatch = errors.New("shaped records and source items differ in length")

// Link is one navigable action on a resource.
type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

// LinkEnvelope wraps linked records with collection level links.
type LinkEnvelope struct {
	Value []ShapedRecord `json:"value"`
	Links []Link         `json:"links"`
}

// LinkBuilder resolves the links of one resource type.
type LinkBuilder[T any] interface {
	EntityLinks(item T, fields string) ([]Link, error)
	CollectionLinks() ([]Link, error)
}

// LinkResponse is the outcome of Decorate. Exactly one of ShapedEntities or
// LinkedEntities is meaningful, as reported by HasLinks.
type LinkResponse struct {
	HasLinks       bool
	ShapedEntities []ShapedRecord
	LinkedEntities *LinkEnvelope
}

// Body is the value to serialise.
func (r LinkResponse) Body() any {
	if r.HasLinks {
		return r.LinkedEntities
	}
	return r.ShapedEntities
}

// Decorate attaches links to records when the media type asks for
// hypermedia. items[i] must be the source of records[i]. Otherwise records
// are returned untouched.
func Decorate[T any](records []ShapedRecord, items []T, mediaType MediaType, builder LinkBuilder[T], fields string) (LinkResponse, error) {
	if !mediaType.IsHateoas() {
		return LinkResponse{ShapedEntities: records}, nil
	}
	if len(records) != len(items) {
		return LinkResponse{}, fmt.Errorf("%w: %d records, %d items", ErrRecordMismatch, len(records), len(items))
	}

	linked := make([]ShapedRecord, len(records))
	for i := range records {
		links, err := builder.EntityLinks(items[i], fields)
		if err != nil {
			return LinkResponse{}, err
		}
		rec := NewShapedRecord(records[i].Len() + 1)
		for _, key := range records[i].keys {
			rec.Set(key, records[i].values[key])
		}
		rec.Set(LinksField, links)
		linked[i] = rec
	}

	collection, err := builder.CollectionLinks()
	if err != nil {
		return LinkResponse{}, err
	}

	return LinkResponse{
		HasLinks: true,
		LinkedEntities: &LinkEnvelope{
			Value: linked,
			Links: collection,
		},
	}, nil
}
