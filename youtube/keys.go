package youtube

import (
	"strings"
	"sync"
)

// KeyPool is an ordered list of API keys with a forward-only cursor.
// Rotation never wraps back to the first key.
type KeyPool struct {
	mu      sync.Mutex
	keys    []string
	current int
}

// ParseKeys splits a comma-separated key list, trimming whitespace and
// dropping empty entries.
func ParseKeys(raw string) []string {
	parts := strings.Split(raw, ",")
	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		if key := strings.TrimSpace(part); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// NewKeyPool builds a pool from a single key or a comma-separated list
func NewKeyPool(raw string) (*KeyPool, error) {
	keys := ParseKeys(raw)
	if len(keys) == 0 {
		return nil, ErrNoAPIKeys
	}
	return &KeyPool{keys: keys}, nil
}

// Current returns the active key
func (p *KeyPool) Current() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.keys[p.current]
}

// Index returns the position of the active key
func (p *KeyPool) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Len returns the number of keys in the pool
func (p *KeyPool) Len() int {
	return len(p.keys)
}

// Rotate advances to the next key. It reports false once the last key is active.
func (p *KeyPool) Rotate() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current >= len(p.keys)-1 {
		return false
	}
	p.current++
	return true
}
