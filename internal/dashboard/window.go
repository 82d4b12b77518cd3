package dashboard

import (
	"math"
	"sync"
	"time"

	"mock-metrics/internal/domain"
)

type Point struct {
	At     time.Time
	Record domain.MetricsRecord
}

// Stat summarises one field across the window.
type Stat struct {
	Min   float64
	Max   float64
	Avg   float64
	Count int
}

// Window keeps the most recent points, oldest first.
type Window struct {
	mu     sync.Mutex
	size   int
	points []Point
}

func NewWindow(size int) *Window {
	if size <= 0 {
		size = 1
	}
	return &Window{size: size, points: make([]Point, 0, size)}
}

func (w *Window) Add(p Point) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.points) == w.size {
		copy(w.points, w.points[1:])
		w.points = w.points[:w.size-1]
	}
	w.points = append(w.points, p)
}

func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.points)
}

func (w *Window) Points() []Point {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]Point, len(w.points))
	copy(out, w.points)
	return out
}

func (w *Window) Latest() (Point, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.points) == 0 {
		return Point{}, false
	}
	return w.points[len(w.points)-1], true
}

// Summary returns per-field stats for every field present in at least
// one point.
func (w *Window) Summary() map[domain.Metric]Stat {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make(map[domain.Metric]Stat)
	add := func(m domain.Metric, v float64) {
		s, ok := out[m]
		if !ok {
			s = Stat{Min: math.Inf(1), Max: math.Inf(-1)}
		}
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		s.Avg = (s.Avg*float64(s.Count) + v) / float64(s.Count+1)
		s.Count++
		out[m] = s
	}

	for _, p := range w.points {
		add(domain.MetricCPU, p.Record.CPU)
		add(domain.MetricLatency, p.Record.LatencyMs)
		if p.Record.RequestRate != nil {
			add(domain.MetricRequestRate, *p.Record.RequestRate)
		}
		if p.Record.MemoryMB != nil {
			add(domain.MetricMemory, float64(*p.Record.MemoryMB))
		}
	}
	return out
}
