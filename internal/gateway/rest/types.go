package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/syntrixbase/docgate/internal/store"
)

// InsertRequest is the body of POST /insert. Body holds either a single
// document or an array of documents.
type InsertRequest struct {
	Body bson.RawValue `bson:"body"`
}

// Documents normalizes Body into a sequence: an array yields its elements,
// anything else is treated as a single document. An empty array stays empty.
func (r InsertRequest) Documents() ([]bson.Raw, error) {
	if r.Body.Type != bson.TypeArray {
		doc, ok := r.Body.DocumentOK()
		if !ok {
			return nil, fmt.Errorf("body: %w", store.ErrInvalidDocument)
		}
		return []bson.Raw{doc}, nil
	}

	values, err := r.Body.Array().Values()
	if err != nil {
		return nil, fmt.Errorf("body: %w", err)
	}
	docs := make([]bson.Raw, 0, len(values))
	for i, v := range values {
		doc, ok := v.DocumentOK()
		if !ok {
			return nil, fmt.Errorf("body[%d]: %w", i, store.ErrInvalidDocument)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// FindRequest is the body of POST /find. Every field is optional.
type FindRequest struct {
	QueryFilter bson.RawValue `bson:"queryFilter"`
	Projection  bson.RawValue `bson:"projection"`
	Limit       bson.RawValue `bson:"limit"`
	Sort        bson.RawValue `bson:"sort"`
	Skip        bson.RawValue `bson:"skip"`
	Hint        bson.RawValue `bson:"hint"`
	Min         bson.RawValue `bson:"min"`
	Max         bson.RawValue `bson:"max"`
}

// Filter returns the match predicate. A missing or null filter matches
// every document.
func (r FindRequest) Filter() (bson.Raw, error) {
	if !present(r.QueryFilter) {
		return nil, nil
	}
	doc, ok := r.QueryFilter.DocumentOK()
	if !ok {
		return nil, fmt.Errorf("queryFilter: %w", store.ErrInvalidDocument)
	}
	return doc, nil
}

// QueryOptions builds the read options from the fields that were supplied.
func (r FindRequest) QueryOptions() (store.QueryOptions, error) {
	var (
		opts store.QueryOptions
		err  error
	)

	if present(r.Limit) {
		if opts.Limit, err = int64Option("limit", r.Limit); err != nil {
			return opts, err
		}
	}
	if present(r.Skip) {
		if opts.Skip, err = int64Option("skip", r.Skip); err != nil {
			return opts, err
		}
	}
	if present(r.Sort) {
		if opts.Sort, err = parseSort(r.Sort); err != nil {
			return opts, err
		}
	}
	if opts.Projection, err = passthrough("projection", r.Projection); err != nil {
		return opts, err
	}
	if opts.Hint, err = passthrough("hint", r.Hint); err != nil {
		return opts, err
	}
	if opts.Min, err = passthrough("min", r.Min); err != nil {
		return opts, err
	}
	if opts.Max, err = passthrough("max", r.Max); err != nil {
		return opts, err
	}
	return opts, nil
}

// FindQueryParams is the query-string form of a find request. Values other
// than limit and skip are Extended JSON; hint and sort also accept a bare
// index or field name.
type FindQueryParams struct {
	QueryFilter string `schema:"queryFilter"`
	Projection  string `schema:"projection"`
	Limit       string `schema:"limit"`
	Sort        string `schema:"sort"`
	Skip        string `schema:"skip"`
	Hint        string `schema:"hint"`
	Min         string `schema:"min"`
	Max         string `schema:"max"`
}

// FindRequest assembles the parameters into the same shape as a POST body.
func (p FindQueryParams) FindRequest() (FindRequest, error) {
	fields := []struct {
		key        string
		value      string
		bareString bool
	}{
		{"queryFilter", p.QueryFilter, false},
		{"projection", p.Projection, false},
		{"limit", p.Limit, false},
		{"sort", p.Sort, true},
		{"skip", p.Skip, false},
		{"hint", p.Hint, true},
		{"min", p.Min, false},
		{"max", p.Max, false},
	}

	var b strings.Builder
	b.WriteByte('{')
	n := 0
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		value := f.value
		if f.bareString && !json.Valid([]byte(value)) {
			quoted, err := json.Marshal(value)
			if err != nil {
				return FindRequest{}, err
			}
			value = string(quoted)
		}
		if n > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%q:%s", f.key, value)
		n++
	}
	b.WriteByte('}')

	var req FindRequest
	if err := bson.UnmarshalExtJSON([]byte(b.String()), false, &req); err != nil {
		return FindRequest{}, fmt.Errorf("query parameters: %w", err)
	}
	return req, nil
}

func present(v bson.RawValue) bool {
	return !v.IsZero() && v.Type != bson.TypeNull && v.Type != bson.TypeUndefined
}

func int64Option(name string, v bson.RawValue) (*int64, error) {
	n, ok := v.AsInt64OK()
	if !ok {
		return nil, fmt.Errorf("%s: expected a number, got %s", name, v.Type)
	}
	return &n, nil
}

// passthrough hands a value to the driver as-is: documents stay raw, other
// values are decoded into their Go equivalents.
func passthrough(name string, v bson.RawValue) (interface{}, error) {
	if !present(v) {
		return nil, nil
	}
	if doc, ok := v.DocumentOK(); ok {
		return doc, nil
	}
	var out interface{}
	if err := v.Unmarshal(&out); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

var errSortDirection = errors.New("sort direction must be 1, -1, asc, desc, ascending or descending")

// parseSort accepts a sort document ({"a": 1, "b": -1}, key order kept), a
// field name, a single [field, direction] pair, or an array of field names
// and pairs.
func parseSort(v bson.RawValue) (interface{}, error) {
	switch v.Type {
	case bson.TypeEmbeddedDocument:
		return v.Document(), nil
	case bson.TypeString:
		return bson.D{{Key: v.StringValue(), Value: 1}}, nil
	case bson.TypeArray:
	default:
		return nil, fmt.Errorf("sort: unsupported type %s", v.Type)
	}

	values, err := v.Array().Values()
	if err != nil {
		return nil, fmt.Errorf("sort: %w", err)
	}
	if key, dir, ok := sortPair(values); ok {
		return bson.D{{Key: key, Value: dir}}, nil
	}

	sort := make(bson.D, 0, len(values))
	for i, elem := range values {
		switch elem.Type {
		case bson.TypeString:
			sort = append(sort, bson.E{Key: elem.StringValue(), Value: 1})
		case bson.TypeArray:
			pair, err := elem.Array().Values()
			if err != nil {
				return nil, fmt.Errorf("sort[%d]: %w", i, err)
			}
			key, dir, ok := sortPair(pair)
			if !ok {
				return nil, fmt.Errorf("sort[%d]: %w", i, errSortDirection)
			}
			sort = append(sort, bson.E{Key: key, Value: dir})
		default:
			return nil, fmt.Errorf("sort[%d]: unsupported type %s", i, elem.Type)
		}
	}
	return sort, nil
}

func sortPair(values []bson.RawValue) (string, interface{}, bool) {
	if len(values) != 2 || values[0].Type != bson.TypeString {
		return "", nil, false
	}
	dir, err := sortDirection(values[1])
	if err != nil {
		return "", nil, false
	}
	return values[0].StringValue(), dir, true
}

func sortDirection(v bson.RawValue) (interface{}, error) {
	if v.IsNumber() {
		n, _ := v.AsInt64OK()
		if n == 1 || n == -1 {
			return int(n), nil
		}
		return nil, errSortDirection
	}
	switch v.Type {
	case bson.TypeString:
		switch strings.ToLower(v.StringValue()) {
		case "asc", "ascending":
			return 1, nil
		case "desc", "descending":
			return -1, nil
		}
	case bson.TypeEmbeddedDocument:
		// {"$meta": "textScore"}
		return v.Document(), nil
	}
	return nil, errSortDirection
}
