package memcache

import (
	"context"
	"reflect"
	"sync"
	"time"
)

type Category string

const (
	CategorySearch      Category = "search"
	CategoryCoordinates Category = "coordinates"
	CategoryViability   Category = "viability"
	CategoryRoutes      Category = "routes"
)

var categoryTTL = map[Category]time.Duration{
	CategorySearch:      10 * time.Minute,
	CategoryCoordinates: 60 * time.Minute,
	CategoryViability:   30 * time.Minute,
	CategoryRoutes:      120 * time.Minute,
}

const SweepInterval = 5 * time.Minute

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Cache guarda valores por categoria com TTL próprio de cada uma.
// Slices são copiados na escrita e na leitura para que o chamador
// possa mutar o que recebeu sem afetar leituras futuras.
type Cache struct {
	mu      sync.Mutex
	entries map[Category]map[string]entry
	now     func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[Category]map[string]entry),
		now:     time.Now,
	}
}

func (c *Cache) Set(category Category, key string, value interface{}) {
	ttl, ok := categoryTTL[category]
	if !ok {
		ttl = categoryTTL[CategorySearch]
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	bucket := c.entries[category]
	if bucket == nil {
		bucket = make(map[string]entry)
		c.entries[category] = bucket
	}
	bucket[key] = entry{value: copyValue(value), expiresAt: c.now().Add(ttl)}
}

// Get remove a entrada na hora se ela já expirou.
func (c *Cache) Get(category Category, key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bucket := c.entries[category]
	if bucket == nil {
		return nil, false
	}
	e, ok := bucket[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(bucket, key)
		return nil, false
	}
	return copyValue(e.value), true
}

func (c *Cache) Delete(category Category, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if bucket := c.entries[category]; bucket != nil {
		delete(bucket, key)
	}
}

func (c *Cache) Clear(category Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, category)
}

func (c *Cache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Category]map[string]entry)
}

func (c *Cache) Size(category Category) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries[category])
}

func (c *Cache) SizeAll() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, bucket := range c.entries {
		total += len(bucket)
	}
	return total
}

// Sweep descarta tudo que já expirou e devolve quantas entradas saíram.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	removed := 0
	for _, bucket := range c.entries {
		for key, e := range bucket {
			if now.After(e.expiresAt) {
				delete(bucket, key)
				removed++
			}
		}
	}
	return removed
}

// StartSweeper roda Sweep em intervalos fixos até o contexto encerrar.
func (c *Cache) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Sweep()
			}
		}
	}()
}

func copyValue(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return v
	}
	dup := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	reflect.Copy(dup, rv)
	return dup.Interface()
}
