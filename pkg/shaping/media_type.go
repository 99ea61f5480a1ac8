package shaping

import (
	"errors"
	"mime"
	"strings"
)

const hateoasToken = "hateoas"

var (
	ErrMissingMediaType = errors.New("accept header is missing")
	ErrInvalidMediaType = errors.New("media type not present")
)

// MediaType is the negotiated response type, e.g.
// application/vnd.wwi.hateoas+json.
type MediaType struct {
	Type    string
	SubType string
	Suffix  string
	Params  map[string]string
}

// ParseMediaType parses the first entry of an Accept header.
func ParseMediaType(accept string) (MediaType, error) {
	if strings.TrimSpace(accept) == "" {
		return MediaType{}, ErrMissingMediaType
	}

	first, _, _ := strings.Cut(accept, ",")
	full, params, err := mime.ParseMediaType(strings.TrimSpace(first))
	if err != nil {
		return MediaType{}, ErrInvalidMediaType
	}

	typ, sub, ok := strings.Cut(full, "/")
	if !ok || typ == "" || sub == "" {
		return MediaType{}, ErrInvalidMediaType
	}

	mt := MediaType{Type: typ, SubType: sub, Params: params}
	if i := strings.LastIndexByte(sub, '+'); i >= 0 {
		mt.Suffix = sub[i+1:]
	}
	return mt, nil
}

// SubTypeWithoutSuffix drops a structured syntax suffix such as "+json".
func (m MediaType) SubTypeWithoutSuffix() string {
	if m.Suffix == "" {
		return m.SubType
	}
	return strings.TrimSuffix(m.SubType, "+"+m.Suffix)
}

// IsHateoas reports whether the caller negotiated a hypermedia variant.
func (m MediaType) IsHateoas() bool {
	return strings.HasSuffix(strings.ToLower(m.SubTypeWithoutSuffix()), hateoasToken)
}

func (m MediaType) String() string {
	if m.Type == "" {
		return ""
	}
	return mime.FormatMediaType(m.Type+"/"+m.SubType, m.Params)
}
