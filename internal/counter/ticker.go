package counter

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidInterval = errors.New("tick interval must be positive")

// Ticker advances a Counter once per interval until its context ends.
type Ticker struct {
	counter  *Counter
	interval time.Duration
	onTick   func(value int64)
}

func NewTicker(c *Counter, interval time.Duration) *Ticker {
	return &Ticker{counter: c, interval: interval}
}

// OnTick registers a hook called after every increment with the new value.
func (t *Ticker) OnTick(fn func(value int64)) {
	t.onTick = fn
}

// Run blocks until ctx is cancelled. It returns nil on cancellation.
func (t *Ticker) Run(ctx context.Context) error {
	if t.interval <= 0 {
		return ErrInvalidInterval
	}

	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tk.C:
			v := t.counter.Inc()
			if t.onTick != nil {
				t.onTick(v)
			}
		}
	}
}
