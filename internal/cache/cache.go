package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

var ErrComputePanicked = errors.New("cache: compute panicked")

// InMemory keeps up to max computed values by key. Concurrent misses on
// the same key share a single computation; failed computations are not
// stored.
type InMemory[V any] struct {
	mu    sync.RWMutex
	max   int
	items map[string]V
	group singleflight.Group
}

func NewInMemory[V any](max int) *InMemory[V] {
	return &InMemory[V]{
		max:   max,
		items: make(map[string]V, max),
	}
}

func (c *InMemory[V]) GetOrCompute(key string, fn func() (V, error)) (V, error) {
	k := hash(key)

	c.mu.RLock()
	if v, ok := c.items[k]; ok {
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	out, err, _ := c.group.Do(k, func() (res any, err error) {
		c.mu.RLock()
		v, ok := c.items[k]
		c.mu.RUnlock()
		if ok {
			return v, nil
		}

		defer func() {
			if r := recover(); r != nil {
				res, err = nil, fmt.Errorf("%w: %v", ErrComputePanicked, r)
			}
		}()

		v, err = fn()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if len(c.items) < c.max {
			c.items[k] = v
		}
		c.mu.Unlock()

		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return out.(V), nil
}

func (c *InMemory[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
