package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/syntrixbase/docgate/internal/gateway/config"
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
	return m.Called(ctx).Error(0)
}

func serve(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestNewServer(t *testing.T) {
	server := NewServer(new(MockDocumentStore), config.DefaultGatewayConfig())
	assert.NotNil(t, server)
	assert.NotNil(t, server.rest)
	assert.NotNil(t, server.metrics)
}

func TestNewServer_NilStore(t *testing.T) {
	assert.Panics(t, func() {
		NewServer(nil, config.DefaultGatewayConfig())
	})
}

func TestServer_RegisterRoutes(t *testing.T) {
	mockStore := new(MockDocumentStore)
	mockStore.On("Ping", mock.Anything).Return(nil)
	mockStore.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]bson.M{}, nil)
	mockStore.On("PoolStatus", mock.Anything).Return(store.PoolStatus{Current: 1, Available: 1}, nil)

	metricsHit := false
	fakeMetrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metricsHit = true
		_, _ = w.Write([]byte("# metrics"))
	})

	server := NewServer(mockStore, config.DefaultGatewayConfig(), WithMetricsHandler(fakeMetrics))
	mux := http.NewServeMux()
	server.RegisterRoutes(mux)

	assert.Equal(t, http.StatusOK, serve(mux, "GET", "/health", "").Code)
	assert.Equal(t, http.StatusOK, serve(mux, "POST", "/find", `{}`).Code)
	assert.Equal(t, http.StatusOK, serve(mux, "GET", "/find", "").Code)

	rr := serve(mux, "GET", "/metrics", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, metricsHit)
	assert.Equal(t, "# metrics", rr.Body.String())
}

func TestServer_MetricsDisabled(t *testing.T) {
	cfg := config.DefaultGatewayConfig()
	cfg.Metrics.Enabled = false

	mux := http.NewServeMux()
	NewServer(new(MockDocumentStore), cfg).RegisterRoutes(mux)

	assert.Equal(t, http.StatusNotFound, serve(mux, "GET", "/metrics", "").Code)
}

func TestServer_MaxBodySize(t *testing.T) {
	mockStore := new(MockDocumentStore)
	cfg := config.DefaultGatewayConfig()
	cfg.MaxBodySize = 8

	mux := http.NewServeMux()
	NewServer(mockStore, cfg).RegisterRoutes(mux)

	rr := serve(mux, "POST", "/insert", `{"body": {"a": "more than eight bytes"}}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	mockStore.AssertNotCalled(t, "InsertMany", mock.Anything, mock.Anything)
}
