package store

import (
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QueryOptions shapes a single read. A nil field is left unset so the
// server's default applies; values are forwarded without validation.
type QueryOptions struct {
	Projection interface{}
	Limit      *int64
	Sort       interface{}
	Skip       *int64
	Hint       interface{}
	Min        interface{}
	Max        interface{}
}

// FindOptions converts q into driver options carrying only the fields that
// were set.
func (q QueryOptions) FindOptions() *options.FindOptions {
	fo := options.Find()
	if q.Projection != nil {
		fo.SetProjection(q.Projection)
	}
	if q.Limit != nil {
		fo.SetLimit(*q.Limit)
	}
	if q.Sort != nil {
		fo.SetSort(q.Sort)
	}
	if q.Skip != nil {
		fo.SetSkip(*q.Skip)
	}
	if q.Hint != nil {
		fo.SetHint(q.Hint)
	}
	if q.Min != nil {
		fo.SetMin(q.Min)
	}
	if q.Max != nil {
		fo.SetMax(q.Max)
	}
	return fo
}
