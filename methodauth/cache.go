package methodauth

import (
	"sync"

	"github.com/skillsenselab/authkit/introspect"
)

// resolutionKey identifies one resolution: the method as presented by the
// call site plus the concrete runtime type it is invoked on. The same method
// may carry different rules on different implementing types, so both parts
// are required.
type resolutionKey struct {
	method      introspect.MethodRef
	runtimeType string
}

// onceCache memoizes computations per key with at-most-one observable
// computation: concurrent first uses of a key serialize on a per-key entry
// lock and all observe the first completed result. The cache-wide lock is
// held only to look up or install entries, so distinct keys never contend.
//
// Failed computations are forgotten by default so the next call retries;
// with cacheFailures set, the error is memoized instead.
//
// Growth is unbounded by design: keys come from the finite set of
// (method, type) pairs a process touches. There is no eviction.
type onceCache[K comparable, V any] struct {
	mu            sync.RWMutex
	entries       map[K]*onceEntry[V]
	cacheFailures bool
}

type onceEntry[V any] struct {
	mu   sync.Mutex
	done bool
	val  V
	err  error
}

func newOnceCache[K comparable, V any](cacheFailures bool) *onceCache[K, V] {
	return &onceCache[K, V]{
		entries:       make(map[K]*onceEntry[V]),
		cacheFailures: cacheFailures,
	}
}

// getOrCompute returns the memoized value for key, running compute if no
// completed computation exists. The second result reports whether this call
// ran the computation.
func (c *onceCache[K, V]) getOrCompute(key K, compute func() (V, error)) (V, bool, error) {
	for {
		c.mu.RLock()
		entry, ok := c.entries[key]
		c.mu.RUnlock()

		if !ok {
			c.mu.Lock()
			entry, ok = c.entries[key]
			if !ok {
				entry = &onceEntry[V]{}
				c.entries[key] = entry
			}
			c.mu.Unlock()
		}

		entry.mu.Lock()
		if entry.done {
			val, err := entry.val, entry.err
			entry.mu.Unlock()
			return val, false, err
		}

		// The entry may have been dropped by a failed computation after we
		// picked it up; computing into an orphan would let two callers
		// observe different results for the same key.
		c.mu.RLock()
		current := c.entries[key]
		c.mu.RUnlock()
		if current != entry {
			entry.mu.Unlock()
			continue
		}

		val, err := compute()
		if err != nil {
			var zero V
			if c.cacheFailures {
				entry.done = true
				entry.err = err
				entry.mu.Unlock()
				return zero, true, err
			}
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
			entry.mu.Unlock()
			return zero, true, err
		}

		entry.val = val
		entry.done = true
		entry.mu.Unlock()
		return val, true, nil
	}
}

// size returns the number of completed or in-flight entries.
func (c *onceCache[K, V]) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
