package api

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/gaii/gaii/internal/metrics"
	"github.com/gaii/gaii/pkg/country"
)

// DatasetLoader resolves a dataset name. *datasource.Loader implements it.
type DatasetLoader interface {
	Load(ctx context.Context, name string) (*country.Dataset, error)
}

// DatasetCache is a thread-safe LRU cache of loaded datasets. Concurrent
// misses for the same name share one load.
type DatasetCache struct {
	loader  DatasetLoader
	metrics *metrics.Metrics
	group   singleflight.Group

	mu      sync.Mutex
	maxSize int
	entries map[string]*country.Dataset
	order   []string // oldest first
}

// NewDatasetCache creates a cache with the given maximum number of entries.
// If maxSize <= 0, it defaults to 8.
func NewDatasetCache(loader DatasetLoader, maxSize int, m *metrics.Metrics) *DatasetCache {
	if maxSize <= 0 {
		maxSize = 8
	}
	return &DatasetCache{
		loader:  loader,
		metrics: m,
		maxSize: maxSize,
		entries: make(map[string]*country.Dataset),
	}
}

// Get returns the named dataset, loading it on a miss.
func (c *DatasetCache) Get(ctx context.Context, name string) (*country.Dataset, error) {
	if ds := c.lookup(name); ds != nil {
		c.metrics.IncrementDatasetLoad("hit")
		return ds, nil
	}

	v, err, _ := c.group.Do(name, func() (any, error) {
		if ds := c.lookup(name); ds != nil {
			return ds, nil
		}
		// shared by every waiter, so one caller going away must not cancel it
		ds, err := c.loader.Load(context.WithoutCancel(ctx), name)
		if err != nil {
			return nil, err
		}
		c.Put(name, ds)
		return ds, nil
	})
	if err != nil {
		c.metrics.IncrementDatasetLoad("error")
		return nil, err
	}
	c.metrics.IncrementDatasetLoad("miss")
	return v.(*country.Dataset), nil
}

// Len reports the number of cached datasets.
func (c *DatasetCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *DatasetCache) lookup(name string) *country.Dataset {
	c.mu.Lock()
	defer c.mu.Unlock()

	ds, ok := c.entries[name]
	if !ok {
		return nil
	}

	// Move to end (most recently used)
	c.moveToEnd(name)
	return ds
}

// Put adds a dataset to the cache, evicting the oldest if full.
func (c *DatasetCache) Put(name string, ds *country.Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[name]; ok {
		c.entries[name] = ds
		c.moveToEnd(name)
		return
	}

	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[name] = ds
	c.order = append(c.order, name)
}

func (c *DatasetCache) moveToEnd(name string) {
	for i, k := range c.order {
		if k == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, name)
}
