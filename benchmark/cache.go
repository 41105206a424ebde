// Package benchmark caches cohort benchmark lookups. Cohort averages move
// only when new tracking data is loaded, so report generation can serve
// repeated lookups from memory instead of hitting the warehouse per cell.
package benchmark

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pitch-reports/logger"
	"pitch-reports/report"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pitch_reports_benchmark_cache_hits_total",
		Help: "Benchmark lookups served from the cache.",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pitch_reports_benchmark_cache_misses_total",
		Help: "Benchmark lookups that hit the warehouse.",
	})
)

const (
	// Cache duration for benchmark lookups
	cacheDuration = 30 * time.Minute

	// How often expired entries are swept
	cleanupInterval = 15 * time.Minute
)

// Cache is a read-through TTL cache over a report.BenchmarkSource. Lookup
// failures are returned to the caller and never cached, so a warehouse
// outage does not pin stale misses.
type Cache struct {
	src report.BenchmarkSource

	mu       sync.RWMutex
	averages map[string]*cachedAverages
	maxVelos map[string]*cachedMaxVelocity
}

type cachedAverages struct {
	value     *report.BenchmarkAverages
	expiresAt time.Time
}

type cachedMaxVelocity struct {
	value     *report.MaxVelocityBenchmark
	expiresAt time.Time
}

var _ report.BenchmarkSource = (*Cache)(nil)

// NewCache wraps a benchmark source with caching.
func NewCache(src report.BenchmarkSource) *Cache {
	return &Cache{
		src:      src,
		averages: make(map[string]*cachedAverages),
		maxVelos: make(map[string]*cachedMaxVelocity),
	}
}

func cacheKey(pitchType string, level report.Level, handedness string) string {
	return fmt.Sprintf("%s|%s|%s", pitchType, level, handedness)
}

// Averages serves cohort averages, hitting the underlying source only on a
// miss. Absent cohorts are cached too: a nil result is an answer, not a
// failure.
func (c *Cache) Averages(ctx context.Context, pitchType string, level report.Level, handedness string) (*report.BenchmarkAverages, error) {
	key := cacheKey(pitchType, level, handedness)

	c.mu.RLock()
	cached, ok := c.averages[key]
	c.mu.RUnlock()
	if ok && time.Now().Before(cached.expiresAt) {
		cacheHits.Inc()
		return cached.value, nil
	}
	cacheMisses.Inc()

	value, err := c.src.Averages(ctx, pitchType, level, handedness)
	if err != nil {
		logger.Warn("benchmark averages lookup failed",
			"pitch_type", pitchType, "level", string(level),
			"handedness", handedness, "error", err)
		return nil, err
	}

	c.mu.Lock()
	c.averages[key] = &cachedAverages{
		value:     value,
		expiresAt: time.Now().Add(cacheDuration),
	}
	c.mu.Unlock()

	return value, nil
}

// MaxVelocity serves the cohort max-velocity benchmark with the same
// read-through behavior as Averages.
func (c *Cache) MaxVelocity(ctx context.Context, pitchType string, level report.Level, handedness string) (*report.MaxVelocityBenchmark, error) {
	key := cacheKey(pitchType, level, handedness)

	c.mu.RLock()
	cached, ok := c.maxVelos[key]
	c.mu.RUnlock()
	if ok && time.Now().Before(cached.expiresAt) {
		cacheHits.Inc()
		return cached.value, nil
	}
	cacheMisses.Inc()

	value, err := c.src.MaxVelocity(ctx, pitchType, level, handedness)
	if err != nil {
		logger.Warn("benchmark max velocity lookup failed",
			"pitch_type", pitchType, "level", string(level),
			"handedness", handedness, "error", err)
		return nil, err
	}

	c.mu.Lock()
	c.maxVelos[key] = &cachedMaxVelocity{
		value:     value,
		expiresAt: time.Now().Add(cacheDuration),
	}
	c.mu.Unlock()

	return value, nil
}

// CleanExpired removes expired entries.
func (c *Cache) CleanExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, cached := range c.averages {
		if now.After(cached.expiresAt) {
			delete(c.averages, key)
		}
	}
	for key, cached := range c.maxVelos {
		if now.After(cached.expiresAt) {
			delete(c.maxVelos, key)
		}
	}
}

// StartCleanup starts a background goroutine sweeping expired entries. It
// stops when ctx is cancelled.
func (c *Cache) StartCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.CleanExpired()
			}
		}
	}()
}

// Len reports the number of live cache entries, for monitoring.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.averages) + len(c.maxVelos)
}
