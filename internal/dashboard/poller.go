package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"mock-metrics/internal/domain"
	"mock-metrics/internal/util"
)

var ErrUnexpectedStatus = errors.New("unexpected status from metrics endpoint")

// Poller fetches /metrics on an interval into a Window, the way the
// browser dashboard does.
type Poller struct {
	client   *http.Client
	url      string
	interval time.Duration
	window   *Window
	logger   *util.MetricsLogger
	now      func() time.Time
}

func NewPoller(baseURL string, interval time.Duration, window *Window, logger *util.MetricsLogger) *Poller {
	return &Poller{
		client:   &http.Client{Timeout: 5 * time.Second},
		url:      strings.TrimRight(baseURL, "/") + "/metrics",
		interval: interval,
		window:   window,
		logger:   logger,
		now:      time.Now,
	}
}

func (p *Poller) Fetch(ctx context.Context) (domain.MetricsRecord, error) {
	var rec domain.MetricsRecord

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return rec, fmt.Errorf("error building request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return rec, fmt.Errorf("error fetching metrics: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return rec, fmt.Errorf("%w: HTTP %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return rec, fmt.Errorf("error decoding metrics: %w", err)
	}
	return rec, nil
}

// Poll fetches once immediately and then every interval. It stops after
// count successful points when count > 0, or when ctx is cancelled.
// Failed fetches are logged and skipped.
func (p *Poller) Poll(ctx context.Context, count int) error {
	tk := time.NewTicker(p.interval)
	defer tk.Stop()

	got := 0
	for {
		if p.pollOnce(ctx) {
			got++
			if count > 0 && got >= count {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-tk.C:
		}
	}
}

func (p *Poller) pollOnce(ctx context.Context) bool {
	rec, err := p.Fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.LogEvent(util.LOG_LEVEL_WARN, "Failed to fetch metrics", err)
		}
		return false
	}

	p.window.Add(Point{At: p.now(), Record: rec})
	p.report(rec)
	return true
}

func (p *Poller) report(rec domain.MetricsRecord) {
	fields := []zap.Field{
		zap.Float64("cpu", rec.CPU),
		zap.Float64("latency_ms", rec.LatencyMs),
		zap.Int64("counter", rec.Counter),
	}
	if rec.RequestRate != nil {
		fields = append(fields, zap.Float64("request_rate", *rec.RequestRate))
	}
	if rec.MemoryMB != nil {
		fields = append(fields, zap.Int("memory_mb", *rec.MemoryMB))
	}

	for metric, s := range p.window.Summary() {
		fields = append(fields, zap.String(string(metric)+"_window",
			fmt.Sprintf("min=%.2f avg=%.2f max=%.2f", s.Min, s.Avg, s.Max)))
	}
	fields = append(fields, zap.Int("points", p.window.Len()))

	p.logger.LogFields(util.LOG_LEVEL_INFO, "metrics", fields...)
}
