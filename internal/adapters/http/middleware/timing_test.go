package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"frontdesk/internal/adapters/http/perf"
)

func okHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
}

// TestTiming_RecordsActions verifies one request entry per action post.
func TestTiming_RecordsActions(t *testing.T) {
	collector := perf.NewCollector(10)
	handler := Timing(collector)(okHandler(http.StatusSeeOther))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/attendance/checkin", nil))

	snap := collector.Snapshot(time.Now().Add(-time.Minute), 10)
	if len(snap.SlowestPaths) != 1 || snap.SlowestPaths[0].Path != "POST /attendance/checkin" {
		t.Fatalf("SlowestPaths = %+v", snap.SlowestPaths)
	}
}

// TestTiming_SkipsStaticAndHealth verifies excluded paths are not recorded.
func TestTiming_SkipsStaticAndHealth(t *testing.T) {
	collector := perf.NewCollector(10)
	handler := Timing(collector)(okHandler(http.StatusOK))

	for _, path := range []string{"/static/app.css", "/healthz"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", path, nil))
		if rr.Code != http.StatusOK {
			t.Errorf("%s: status = %d", path, rr.Code)
		}
	}
	if collector.TotalRecorded() != 0 {
		t.Errorf("TotalRecorded = %d, want 0", collector.TotalRecorded())
	}
}

// TestTiming_NilCollector verifies middleware works without a collector.
func TestTiming_NilCollector(t *testing.T) {
	rr := httptest.NewRecorder()
	Timing(nil)(okHandler(http.StatusNoContent)).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rr.Code)
	}
}

// TestTiming_PanicStillRecords verifies the deferred bookkeeping runs when
// the handler panics and the panic propagates.
func TestTiming_PanicStillRecords(t *testing.T) {
	collector := perf.NewCollector(10)
	handler := Timing(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic to propagate")
		}
		if collector.TotalRecorded() != 1 {
			t.Errorf("TotalRecorded = %d, want 1", collector.TotalRecorded())
		}
	}()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
}

// TestTiming_PooledWriterDoesNotLeakStatus verifies a reused statusWriter
// starts from 200.
func TestTiming_PooledWriterDoesNotLeakStatus(t *testing.T) {
	collector := perf.NewCollector(1)
	Timing(collector)(okHandler(http.StatusInternalServerError)).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/view", nil))

	implicit := Timing(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	implicit.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/view", nil))

	snap := collector.Snapshot(time.Now().Add(-time.Minute), 10)
	if len(snap.SlowestPaths) != 1 || snap.SlowestPaths[0].Count != 1 {
		t.Fatalf("SlowestPaths = %+v", snap.SlowestPaths)
	}
	if snap.RequestP50Ms < 0 {
		t.Errorf("P50 = %v", snap.RequestP50Ms)
	}
}

// TestSlowRequestThreshold verifies env parsing and fallback.
func TestSlowRequestThreshold(t *testing.T) {
	tests := []struct {
		env  string
		want time.Duration
	}{
		{"", 200 * time.Millisecond},
		{"750", 750 * time.Millisecond},
		{"-5", 200 * time.Millisecond},
		{"abc", 200 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Setenv("FRONTDESK_SLOW_REQUEST_MS", tt.env)
		if got := SlowRequestThreshold(); got != tt.want {
			t.Errorf("env %q: got %v, want %v", tt.env, got, tt.want)
		}
	}
}

// BenchmarkTiming measures per-request overhead.
func BenchmarkTiming(b *testing.B) {
	collector := perf.NewCollector(perf.DefaultRingSize)
	handler := Timing(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest("GET", "/", nil)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
}
