// Package cache implementa una caché en memoria con expiración por TTL.
package cache

import (
	"sync"
	"time"
)

// Clock devuelve la hora actual; inyectable para pruebas.
type Clock func() time.Time

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// TTL caché por clave sin política de desalojo más allá de la expiración.
// Con ttl <= 0 la caché queda deshabilitada: Get siempre falla.
type TTL[V any] struct {
	mu    sync.RWMutex
	ttl   time.Duration
	now   Clock
	items map[string]entry[V]
}

// NewTTL construye la caché. Si now es nil se usa time.Now.
func NewTTL[V any](ttl time.Duration, now Clock) *TTL[V] {
	if now == nil {
		now = time.Now
	}
	return &TTL[V]{ttl: ttl, now: now, items: make(map[string]entry[V])}
}

// Get devuelve el valor si now - storedAt < ttl.
func (c *TTL[V]) Get(key string) (V, bool) {
	var zero V
	if c.ttl <= 0 {
		return zero, false
	}
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || c.now().Sub(e.storedAt) >= c.ttl {
		return zero, false
	}
	return e.value, true
}

// Set sobrescribe el valor y reinicia su marca de tiempo.
func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	c.items[key] = entry[V]{value: value, storedAt: c.now()}
	c.mu.Unlock()
}
