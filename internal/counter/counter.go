package counter

import (
	"go.uber.org/atomic"
)

// Counter is a process-wide tick count. The zero value is ready to use
// and starts at 0. It never decreases.
type Counter struct {
	value atomic.Int64
}

func New() *Counter {
	return &Counter{}
}

func (c *Counter) Value() int64 {
	return c.value.Load()
}

// Inc advances the counter by one and returns the new value.
func (c *Counter) Inc() int64 {
	return c.value.Inc()
}
