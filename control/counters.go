// control/counters.go
// Author: momentics <momentics@gmail.com>
//
// Removal counters for watcher teardown, keyed by endpoint identity.
// Exposes counts in a thread-safe map so test goroutines can read snapshots
// while the loop goroutine mutates.

package control

import (
	"sync"
)

// Counters tracks how many times each endpoint had a reader or writer removed.
type Counters struct {
	mu           sync.RWMutex
	removeReader map[string]int
	removeWriter map[string]int
}

// NewCounters creates an empty counter registry.
func NewCounters() *Counters {
	c := &Counters{}
	c.reset()
	return c
}

// IncRemoveReader bumps the reader-removal count for the endpoint id.
func (c *Counters) IncRemoveReader(id string) {
	c.mu.Lock()
	c.removeReader[id]++
	c.mu.Unlock()
}

// IncRemoveWriter bumps the writer-removal count for the endpoint id.
func (c *Counters) IncRemoveWriter(id string) {
	c.mu.Lock()
	c.removeWriter[id]++
	c.mu.Unlock()
}

// RemoveReaderCount returns the reader-removal count for the endpoint id.
func (c *Counters) RemoveReaderCount(id string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.removeReader[id]
}

// RemoveWriterCount returns the writer-removal count for the endpoint id.
func (c *Counters) RemoveWriterCount(id string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.removeWriter[id]
}

// Reset clears every count. Tests call this between scenario phases.
func (c *Counters) Reset() {
	c.mu.Lock()
	c.reset()
	c.mu.Unlock()
}

func (c *Counters) reset() {
	c.removeReader = make(map[string]int)
	c.removeWriter = make(map[string]int)
}

// Snapshot returns the latest counts as a flat map.
func (c *Counters) Snapshot() map[string]map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := map[string]map[string]int{
		"remove_reader": make(map[string]int, len(c.removeReader)),
		"remove_writer": make(map[string]int, len(c.removeWriter)),
	}
	for k, v := range c.removeReader {
		out["remove_reader"][k] = v
	}
	for k, v := range c.removeWriter {
		out["remove_writer"][k] = v
	}
	return out
}
