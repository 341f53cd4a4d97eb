// Package session holds option values resolved during a single run.
package session

// Cache memoizes resolved option values for the lifetime of the process.
// Nothing in it is ever persisted; its whole point is that a question
// answered once is never asked again in the same run.
type Cache struct {
	values map[string]string
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{values: make(map[string]string)}
}

// Lookup returns the value cached under key.
func (c *Cache) Lookup(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Put stores value under key and returns the value now held there. A key
// that is already present keeps its existing value, so the first resolution
// of an option always wins for the rest of the run.
func (c *Cache) Put(key, value string) string {
	if existing, ok := c.values[key]; ok {
		return existing
	}
	c.values[key] = value
	return value
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	return len(c.values)
}
