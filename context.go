package flowstate

import "sync"

// Context provides thread-safe key/value storage for extended state
// that lives alongside the tagged snapshots, such as retry counters or
// operator notes that do not belong to any one state variant.
type Context struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{
		data: make(map[string]any),
	}
}

// Get retrieves a value by key. Returns nil if the key does not exist.
func (c *Context) Get(key string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data[key]
}

// Set stores a value by key.
func (c *Context) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

// Update atomically replaces the value at key with fn(old). fn runs
// under the write lock and must not call back into the context.
func (c *Context) Update(key string, fn func(old any) any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = fn(c.data[key])
}

// Delete removes a key from the context.
func (c *Context) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Len returns the number of stored keys.
func (c *Context) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Snapshot returns a defensive copy of all data; modifications to the
// returned map do not affect the context.
func (c *Context) Snapshot() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]any, len(c.data))
	for k, v := range c.data {
		out[k] = v
	}
	return out
}
