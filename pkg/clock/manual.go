package clock

import (
	"sync/atomic"
	"time"
)

// Manual is a clock which moves only when told to. It is safe for concurrent use.
type Manual struct {
	nanos atomic.Int64
}

// NewManual returns a clock reading t.
func NewManual(t time.Time) *Manual {
	c := &Manual{}
	c.Set(t)
	return c
}

// Now returns the current reading.
func (c *Manual) Now() time.Time {
	return time.Unix(0, c.nanos.Load())
}

// Set sets the reading to t.
func (c *Manual) Set(t time.Time) {
	c.nanos.Store(t.UnixNano())
}

// Advance moves the reading by d.
func (c *Manual) Advance(d time.Duration) {
	c.nanos.Add(int64(d))
}
