package solver

import (
	"sync"
	"time"
)

// Counters accumulates the three run-wide statistics a solve reports:
// time spent building heuristic warm starts, time spent separating cuts,
// and the total number of cuts added. All three only ever grow across a
// run, and are safe to update from the engine's separation callback
// concurrently with the heuristic warm-start pass that precedes it.
type Counters struct {
	mu             sync.Mutex
	heuristicTime  time.Duration
	separationTime time.Duration
	cutsAdded      int64
}

// NewCounters returns a zeroed Counters.
func NewCounters() *Counters {
	return &Counters{}
}

// AddHeuristicTime accrues d to the heuristic-time total. Satisfies
// heuristics.Timer structurally.
func (c *Counters) AddHeuristicTime(d time.Duration) {
	c.mu.Lock()
	c.heuristicTime += d
	c.mu.Unlock()
}

// AddSeparationTime accrues d to the cut-separation-time total.
func (c *Counters) AddSeparationTime(d time.Duration) {
	c.mu.Lock()
	c.separationTime += d
	c.mu.Unlock()
}

// AddCuts accrues n to the total number of cuts added across the run.
func (c *Counters) AddCuts(n int64) {
	c.mu.Lock()
	c.cutsAdded += n
	c.mu.Unlock()
}

// HeuristicTime returns the accumulated heuristic-time total.
func (c *Counters) HeuristicTime() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.heuristicTime
}

// SeparationTime returns the accumulated cut-separation-time total.
func (c *Counters) SeparationTime() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.separationTime
}

// CutsAdded returns the total number of cuts added across the run.
func (c *Counters) CutsAdded() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cutsAdded
}
