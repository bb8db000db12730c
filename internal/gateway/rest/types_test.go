package rest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/syntrixbase/docgate/internal/store"
)

func decodeFindRequest(t *testing.T, body string) FindRequest {
	t.Helper()
	var req FindRequest
	require.NoError(t, bson.UnmarshalExtJSON([]byte(body), false, &req))
	return req
}

func TestInsertRequest_Documents(t *testing.T) {
	var req InsertRequest
	require.NoError(t, bson.UnmarshalExtJSON([]byte(`{"body": []}`), false, &req))
	docs, err := req.Documents()
	require.NoError(t, err)
	assert.Empty(t, docs)

	require.NoError(t, bson.UnmarshalExtJSON([]byte(`{"body": {"_id": {"$oid": "5f1d7f5e9d1b2c3a4b5c6d7e"}}}`), false, &req))
	docs, err = req.Documents()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "5f1d7f5e9d1b2c3a4b5c6d7e", docs[0].Lookup("_id").ObjectID().Hex())

	require.NoError(t, bson.UnmarshalExtJSON([]byte(`{"body": [{"a": 1}, 2]}`), false, &req))
	_, err = req.Documents()
	assert.ErrorIs(t, err, store.ErrInvalidDocument)
	assert.Contains(t, err.Error(), "body[1]")
}

func TestFindRequest_AbsentFieldsStayUnset(t *testing.T) {
	req := decodeFindRequest(t, `{"limit": null, "sort": null, "hint": null}`)

	filter, err := req.Filter()
	require.NoError(t, err)
	assert.Nil(t, filter)

	opts, err := req.QueryOptions()
	require.NoError(t, err)
	assert.Equal(t, store.QueryOptions{}, opts)
}

func TestFindRequest_NumericOptions(t *testing.T) {
	req := decodeFindRequest(t, `{"limit": {"$numberLong": "3"}, "skip": 2.0}`)

	opts, err := req.QueryOptions()
	require.NoError(t, err)
	assert.Equal(t, int64(3), *opts.Limit)
	assert.Equal(t, int64(2), *opts.Skip)
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name string
		sort string
		want bson.D
	}{
		{"field name", `"ts"`, bson.D{{Key: "ts", Value: 1}}},
		{"pair", `["ts", -1]`, bson.D{{Key: "ts", Value: -1}}},
		{"named direction", `["ts", "desc"]`, bson.D{{Key: "ts", Value: -1}}},
		{"field list", `["a", "b"]`, bson.D{{Key: "a", Value: 1}, {Key: "b", Value: 1}}},
		{"pair list", `[["a", "asc"], ["b", "descending"], "c"]`, bson.D{
			{Key: "a", Value: 1}, {Key: "b", Value: -1}, {Key: "c", Value: 1},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := decodeFindRequest(t, `{"sort": `+tt.sort+`}`)
			got, err := parseSort(req.Sort)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSort_Document(t *testing.T) {
	req := decodeFindRequest(t, `{"sort": {"score": {"$meta": "textScore"}, "ts": -1}}`)

	got, err := parseSort(req.Sort)
	require.NoError(t, err)
	assert.Equal(t, []string{"score", "ts"}, sortKeys(t, got))
}

func TestParseSort_Invalid(t *testing.T) {
	for _, sort := range []string{`true`, `[["a", 0]]`, `[["a", "sideways"]]`, `[1]`} {
		req := decodeFindRequest(t, `{"sort": `+sort+`}`)
		_, err := parseSort(req.Sort)
		assert.Error(t, err, sort)
	}
}

func TestFindQueryParams_FindRequest(t *testing.T) {
	p := FindQueryParams{
		QueryFilter: `{"level": "warn"}`,
		Sort:        `{"ts": -1}`,
		Hint:        `{"level": 1}`,
		Skip:        "10",
	}
	req, err := p.FindRequest()
	require.NoError(t, err)

	filter, err := req.Filter()
	require.NoError(t, err)
	assert.Equal(t, "warn", filter.Lookup("level").StringValue())

	opts, err := req.QueryOptions()
	require.NoError(t, err)
	assert.Equal(t, int64(10), *opts.Skip)
	assert.Nil(t, opts.Limit)
	assert.Equal(t, []string{"ts"}, sortKeys(t, opts.Sort))
	_, ok := opts.Hint.(bson.Raw)
	assert.True(t, ok)

	_, err = FindQueryParams{QueryFilter: `{"level": `}.FindRequest()
	assert.Error(t, err)
}
