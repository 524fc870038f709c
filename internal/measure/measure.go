// Package measure provides lightweight in-process instrumentation counters
// and timing entries, fed by the moment and bp packages. It is not part of
// the moment or bp public API.
package measure

import (
	"sync"
	"time"
)

// Entry is a single timing measurement.
type Entry struct {
	Label string
	Dur   time.Duration
}

var (
	mu       sync.Mutex
	counters = make(map[string]uint64)
	timings  []Entry
)

// Incr increments a named counter by one.
func Incr(name string) { Add(name, 1) }

// Add increments a named counter by n.
func Add(name string, n uint64) {
	mu.Lock()
	counters[name] += n
	mu.Unlock()
}

// Track records the duration since start under name.
func Track(start time.Time, name string) {
	mu.Lock()
	timings = append(timings, Entry{Label: name, Dur: time.Since(start)})
	mu.Unlock()
}

// SnapshotAndReset returns the accumulated counters and clears them.
func SnapshotAndReset() map[string]uint64 {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]uint64, len(counters))
	for k, v := range counters {
		out[k] = v
	}
	counters = make(map[string]uint64)
	return out
}

// SnapshotTimings returns the accumulated timing entries and clears them.
func SnapshotTimings() []Entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Entry, len(timings))
	copy(out, timings)
	timings = nil
	return out
}
