package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"mock-metrics/internal/domain"
	"mock-metrics/internal/util"
)

func point(cpu float64, counter int64) Point {
	return Point{Record: domain.MetricsRecord{CPU: cpu, LatencyMs: cpu * 2, Counter: counter}}
}

func TestWindow_KeepsMostRecent(t *testing.T) {
	w := NewWindow(3)
	_, ok := w.Latest()
	assert.False(t, ok)

	for i := 1; i <= 5; i++ {
		w.Add(point(float64(i*10), int64(i)))
	}

	assert.Equal(t, 3, w.Len())
	pts := w.Points()
	assert.Equal(t, int64(3), pts[0].Record.Counter)
	assert.Equal(t, int64(5), pts[2].Record.Counter)

	latest, ok := w.Latest()
	require.True(t, ok)
	assert.Equal(t, int64(5), latest.Record.Counter)
}

func TestWindow_Summary(t *testing.T) {
	w := NewWindow(30)
	rate := 60.0
	mem := 200
	w.Add(point(10, 1))
	w.Add(point(30, 2))
	w.Add(Point{Record: domain.MetricsRecord{CPU: 20, LatencyMs: 40, RequestRate: &rate, MemoryMB: &mem, Counter: 3}})

	s := w.Summary()
	assert.Equal(t, Stat{Min: 10, Max: 30, Avg: 20, Count: 3}, s[domain.MetricCPU])
	assert.Equal(t, Stat{Min: 20, Max: 60, Avg: 40, Count: 3}, s[domain.MetricLatency])
	assert.Equal(t, 1, s[domain.MetricRequestRate].Count)
	assert.Equal(t, 200.0, s[domain.MetricMemory].Max)
}

func TestPoller_Poll(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/metrics", r.URL.Path)
		n := calls.Inc()
		w.Header().Set("Content-Type", "application/json")
		if n == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"cpu":40.5,"latency_ms":101.25,"request_rate":70.1,"counter":4}`))
	}))
	defer srv.Close()

	w := NewWindow(30)
	p := NewPoller(srv.URL+"/", 5*time.Millisecond, w, &util.MetricsLogger{})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, p.Poll(ctx, 3))

	assert.Equal(t, 3, w.Len(), "failed fetches are skipped")
	assert.Equal(t, int32(4), calls.Load())

	latest, ok := w.Latest()
	require.True(t, ok)
	assert.Equal(t, 40.5, latest.Record.CPU)
	require.NotNil(t, latest.Record.RequestRate)
	assert.Equal(t, 70.1, *latest.Record.RequestRate)
}

func TestPoller_FetchStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	p := NewPoller(srv.URL, time.Second, NewWindow(1), &util.MetricsLogger{})
	_, err := p.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestPoller_StopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cpu":1,"latency_ms":2,"counter":0}`))
	}))
	defer srv.Close()

	p := NewPoller(srv.URL, time.Hour, NewWindow(5), &util.MetricsLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Poll(ctx, 0) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
}
