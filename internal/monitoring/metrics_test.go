package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestMetrics() *Metrics {
	return New(prometheus.NewRegistry())
}

func TestRecordOperation(t *testing.T) {
	m := newTestMetrics()

	m.RecordOperation("fs.read", "success", 5*time.Millisecond)
	m.RecordOperation("fs.read", "success", 2*time.Millisecond)
	m.RecordOperation("fs.read", "failure", time.Millisecond)

	if got := testutil.ToFloat64(m.OpCalls.WithLabelValues("fs.read", "success")); got != 2 {
		t.Errorf("Success counter mismatch: %v", got)
	}
	if got := testutil.ToFloat64(m.OpCalls.WithLabelValues("fs.read", "failure")); got != 1 {
		t.Errorf("Failure counter mismatch: %v", got)
	}
	if got := testutil.ToFloat64(m.OpErrors.WithLabelValues("fs.read")); got != 1 {
		t.Errorf("Error counter mismatch: %v", got)
	}

	snap := m.GetSnapshot()
	if snap.TotalOperations != 3 || snap.FailedOperations != 1 {
		t.Errorf("Snapshot mismatch: %+v", snap)
	}
}

func TestRecordBatchRun(t *testing.T) {
	m := newTestMetrics()

	m.RecordBatchRun("fs.copy", 10, 2, 100*time.Millisecond)
	m.RecordBatchRun("fs.copy", 5, 0, 50*time.Millisecond)

	if got := testutil.ToFloat64(m.BatchRuns.WithLabelValues("fs.copy")); got != 2 {
		t.Errorf("Run counter mismatch: %v", got)
	}
	if got := testutil.ToFloat64(m.BatchItems.WithLabelValues("fs.copy")); got != 15 {
		t.Errorf("Item counter mismatch: %v", got)
	}
	if got := testutil.ToFloat64(m.BatchFailures.WithLabelValues("fs.copy")); got != 2 {
		t.Errorf("Failure counter mismatch: %v", got)
	}
}

func TestBatchInFlight(t *testing.T) {
	m := newTestMetrics()

	m.IncBatchInFlight()
	m.IncBatchInFlight()
	if got := testutil.ToFloat64(m.BatchInFlight); got != 2 {
		t.Errorf("In-flight gauge mismatch: %v", got)
	}
	m.DecBatchInFlight()
	if got := testutil.ToFloat64(m.BatchInFlight); got != 1 {
		t.Errorf("In-flight gauge mismatch after dec: %v", got)
	}
}

func TestWSMetrics(t *testing.T) {
	m := newTestMetrics()

	m.IncWSConnections()
	m.IncWSConnections()
	m.RecordWSMessage("out", "run_started")
	m.DecWSConnections()

	if got := testutil.ToFloat64(m.WSConnections); got != 1 {
		t.Errorf("Connection gauge mismatch: %v", got)
	}
	if got := testutil.ToFloat64(m.WSMessages.WithLabelValues("out", "run_started")); got != 1 {
		t.Errorf("Message counter mismatch: %v", got)
	}
	if snap := m.GetSnapshot(); snap.ActiveConnections != 1 {
		t.Errorf("Snapshot connections mismatch: %+v", snap)
	}
}

func TestSnapshotHTTPErrors(t *testing.T) {
	m := newTestMetrics()

	m.RecordHTTPRequest("GET", "/health", "200", time.Millisecond, 0, 128)
	m.RecordHTTPRequest("POST", "/services/execute", "500", time.Millisecond, 64, 32)
	m.RecordHTTPRequest("GET", "/nope", "404", time.Millisecond, 0, 16)

	snap := m.GetSnapshot()
	if snap.TotalRequests != 3 {
		t.Errorf("Request count mismatch: %+v", snap)
	}
	if snap.TotalErrors != 2 {
		t.Errorf("Error count mismatch: %+v", snap)
	}
	if snap.UptimeSeconds < 0 {
		t.Errorf("Uptime should be non-negative: %v", snap.UptimeSeconds)
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newTestMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/boom", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "boom")
	})

	for _, path := range []string{"/ping", "/ping", "/boom"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
	}

	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/ping", "200")); got != 2 {
		t.Errorf("Request counter mismatch: %v", got)
	}
	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/boom", "500")); got != 1 {
		t.Errorf("Error request counter mismatch: %v", got)
	}
	if snap := m.GetSnapshot(); snap.TotalErrors != 1 {
		t.Errorf("Snapshot error count mismatch: %+v", snap)
	}
}

func TestTimer(t *testing.T) {
	m := newTestMetrics()

	timer := NewTimer(m, "fs.stat")
	timer.Stop("success")

	if got := testutil.ToFloat64(m.OpCalls.WithLabelValues("fs.stat", "success")); got != 1 {
		t.Errorf("Timer should record one call: %v", got)
	}
	if snap := m.GetSnapshot(); snap.TotalOperations != 1 {
		t.Errorf("Snapshot mismatch: %+v", snap)
	}
}
