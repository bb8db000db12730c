package rest

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/syntrixbase/docgate/internal/store"
)

type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) InsertMany(ctx context.Context, docs []bson.Raw) (*store.InsertResult, error) {
	args := m.Called(ctx, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.InsertResult), args.Error(1)
}

func (m *MockDocumentStore) Find(ctx context.Context, filter bson.Raw, opts store.QueryOptions) ([]bson.M, error) {
	args := m.Called(ctx, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bson.M), args.Error(1)
}

func (m *MockDocumentStore) PoolStatus(ctx context.Context) (store.PoolStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(store.PoolStatus), args.Error(1)
}

func (m *MockDocumentStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// panickingPoolStore fails the pool status lookup by panicking.
type panickingPoolStore struct {
	*MockDocumentStore
}

func (s panickingPoolStore) PoolStatus(context.Context) (store.PoolStatus, error) {
	panic("serverStatus exploded")
}

func createTestServer(s DocumentStore) http.Handler {
	mux := http.NewServeMux()
	NewHandler(s).RegisterRoutes(mux)
	return mux
}

// capturePoolStatus replaces the metrics hook for one test and returns the
// values it was called with.
func capturePoolStatus(t interface{ Cleanup(func()) }) *[]store.PoolStatus {
	var seen []store.PoolStatus
	prev := observePoolStatus
	observePoolStatus = func(current, available int64) {
		seen = append(seen, store.PoolStatus{Current: current, Available: available})
	}
	t.Cleanup(func() { observePoolStatus = prev })
	return &seen
}
