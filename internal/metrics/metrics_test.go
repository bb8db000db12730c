package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/event"
)

func TestObservePoolStatus(t *testing.T) {
	ObservePoolStatus(7, 93)

	assert.Equal(t, float64(7), testutil.ToFloat64(serverConnections.WithLabelValues("current")))
	assert.Equal(t, float64(93), testutil.ToFloat64(serverConnections.WithLabelValues("available")))
}

func TestObserveOperation(t *testing.T) {
	okBefore := testutil.ToFloat64(operationsTotal.WithLabelValues("find", "ok"))
	errBefore := testutil.ToFloat64(operationsTotal.WithLabelValues("find", "error"))

	ObserveOperation("find", time.Now(), nil)
	ObserveOperation("find", time.Now(), errors.New("boom"))
	ObserveOperation("find", time.Now(), nil)

	assert.Equal(t, okBefore+2, testutil.ToFloat64(operationsTotal.WithLabelValues("find", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(operationsTotal.WithLabelValues("find", "error")))
}

func TestPoolMonitor(t *testing.T) {
	open := driverConnections.WithLabelValues("open")
	checkedOut := driverConnections.WithLabelValues("checked_out")
	openBefore := testutil.ToFloat64(open)
	outBefore := testutil.ToFloat64(checkedOut)

	m := PoolMonitor()
	m.Event(&event.PoolEvent{Type: event.ConnectionCreated})
	m.Event(&event.PoolEvent{Type: event.ConnectionCreated})
	m.Event(&event.PoolEvent{Type: event.GetSucceeded})
	m.Event(&event.PoolEvent{Type: event.GetSucceeded})
	m.Event(&event.PoolEvent{Type: event.ConnectionReturned})
	m.Event(&event.PoolEvent{Type: event.ConnectionClosed})
	m.Event(&event.PoolEvent{Type: event.GetStarted})

	assert.Equal(t, openBefore+1, testutil.ToFloat64(open))
	assert.Equal(t, outBefore+1, testutil.ToFloat64(checkedOut))
}

func TestHandler(t *testing.T) {
	ObservePoolStatus(1, 2)

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "docgate_store_server_connections")
}
