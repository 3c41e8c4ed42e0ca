// Package stats counts what happens in a calculator session.
package stats

import (
	"sync/atomic"
	"time"
)

// Counter is a thread-safe monotonically increasing count
type Counter struct {
	value int64
	name  string
}

// NewCounter creates a new counter
func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc increments the counter by 1
func (c *Counter) Inc() {
	atomic.AddInt64(&c.value, 1)
}

// Add adds the given value to the counter
func (c *Counter) Add(value int64) {
	atomic.AddInt64(&c.value, value)
}

// Get returns the current counter value
func (c *Counter) Get() int64 {
	return atomic.LoadInt64(&c.value)
}

// Reset resets the counter to 0
func (c *Counter) Reset() {
	atomic.StoreInt64(&c.value, 0)
}

// Name returns the counter name
func (c *Counter) Name() string {
	return c.name
}

// Stats groups the per-session counters
type Stats struct {
	Inputs      *Counter
	Ignored     *Counter
	Evaluations *Counter
	Errors      *Counter
	Undos       *Counter
	Redos       *Counter
	TileChanges *Counter
	startTime   time.Time
}

// Snapshot is a point-in-time copy of the counters
type Snapshot struct {
	Inputs      int64         `json:"inputs"`
	Ignored     int64         `json:"ignored"`
	Evaluations int64         `json:"evaluations"`
	Errors      int64         `json:"errors"`
	Undos       int64         `json:"undos"`
	Redos       int64         `json:"redos"`
	TileChanges int64         `json:"tile_changes"`
	Uptime      time.Duration `json:"uptime_ns"`
}

// New creates a zeroed counter set
func New() *Stats {
	return &Stats{
		Inputs:      NewCounter("inputs"),
		Ignored:     NewCounter("ignored"),
		Evaluations: NewCounter("evaluations"),
		Errors:      NewCounter("errors"),
		Undos:       NewCounter("undos"),
		Redos:       NewCounter("redos"),
		TileChanges: NewCounter("tile_changes"),
		startTime:   time.Now(),
	}
}

// Snapshot copies the current values
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Inputs:      s.Inputs.Get(),
		Ignored:     s.Ignored.Get(),
		Evaluations: s.Evaluations.Get(),
		Errors:      s.Errors.Get(),
		Undos:       s.Undos.Get(),
		Redos:       s.Redos.Get(),
		TileChanges: s.TileChanges.Get(),
		Uptime:      time.Since(s.startTime),
	}
}

// Counters returns every counter in a stable order
func (s *Stats) Counters() []*Counter {
	return []*Counter{s.Inputs, s.Ignored, s.Evaluations, s.Errors, s.Undos, s.Redos, s.TileChanges}
}

// Reset zeroes every counter
func (s *Stats) Reset() {
	for _, c := range s.Counters() {
		c.Reset()
	}
	s.startTime = time.Now()
}
