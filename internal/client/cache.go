package client

import (
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// cache keeps successful read bodies by request key. Concurrent misses for the
// same key share one request.
type cache struct {
	mu      sync.Mutex
	entries map[string][]byte
	flight  singleflight.Group
	gen     uint64 // bumped on every invalidation
}

func newCache() *cache {
	return &cache{entries: map[string][]byte{}}
}

func (c *cache) get(key string, fetch func() ([]byte, error)) ([]byte, error) {
	c.mu.Lock()
	if body, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return body, nil
	}
	gen := c.gen
	c.mu.Unlock()

	v, err, _ := c.flight.Do(key, func() (any, error) {
		body, err := fetch()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		// A mutation may have landed while the read was in flight
		if c.gen == gen {
			c.entries[key] = body
		}
		c.mu.Unlock()
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// invalidate drops every key starting with one of prefixes, or all keys when none are given.
func (c *cache) invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	if len(prefixes) == 0 {
		clear(c.entries)
		return
	}

	for key := range c.entries {
		for _, p := range prefixes {
			if strings.HasPrefix(key, p) {
				delete(c.entries, key)
				break
			}
		}
	}
}

func (c *cache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
