// Package ratelimit provides per-key token bucket rate limiting on top of
// golang.org/x/time/rate.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/garyellow/strcheck/internal/metrics"
)

// KeyedConfig configures a KeyedLimiter instance.
type KeyedConfig struct {
	// Name identifies this limiter for metrics (e.g., "user")
	Name string

	// Token bucket settings
	Burst        int     // Maximum tokens (burst capacity)
	RefillPerSec float64 // Tokens refilled per second

	// Cleanup settings
	CleanupPeriod time.Duration // How often to scan for idle keys (0 disables the loop)
	IdleTTL       time.Duration // Keys unused this long are removed even if not full

	// Optional metrics reporter
	Metrics *metrics.Metrics
}

// KeyedLimiter keeps a separate token bucket per key (e.g., LINE user ID) and
// removes buckets that have refilled or gone idle.
type KeyedLimiter struct {
	mu       sync.Mutex
	entries  map[string]*keyedEntry
	config   KeyedConfig
	now      func() time.Time
	onDrop   func()
	onUpdate func(count int)
	stopCh   chan struct{}
	stopOnce sync.Once
}

type keyedEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewKeyedLimiter creates a per-key rate limiter and starts its cleanup loop.
//
// Example:
//
//	limiter := NewKeyedLimiter(KeyedConfig{
//	    Name:          "user",
//	    Burst:         10,
//	    RefillPerSec:  0.5, // 1 token per 2 seconds
//	    CleanupPeriod: 5 * time.Minute,
//	})
//	defer limiter.Stop()
//
//	if limiter.Allow("U123") {
//	    // Process request
//	}
func NewKeyedLimiter(cfg KeyedConfig) *KeyedLimiter {
	kl := &KeyedLimiter{
		entries: make(map[string]*keyedEntry),
		config:  cfg,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}

	if cfg.Metrics != nil {
		kl.onDrop = func() { cfg.Metrics.RecordRateLimiterDrop(cfg.Name) }
		kl.onUpdate = cfg.Metrics.SetRateLimiterUsers
	}

	if cfg.CleanupPeriod > 0 {
		go kl.cleanupLoop()
	}

	return kl
}

// Allow consumes one token for key and reports whether the request may proceed.
// An empty key is always allowed.
func (kl *KeyedLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	kl.mu.Lock()
	now := kl.now()
	entry, ok := kl.entries[key]
	if !ok {
		entry = &keyedEntry{limiter: rate.NewLimiter(rate.Limit(kl.config.RefillPerSec), kl.config.Burst)}
		kl.entries[key] = entry
	}
	entry.lastSeen = now
	allowed := entry.limiter.AllowN(now, 1)
	kl.mu.Unlock()

	if !allowed && kl.onDrop != nil {
		kl.onDrop()
	}
	return allowed
}

// Available returns the tokens currently available for key.
// Unknown keys report a full bucket.
func (kl *KeyedLimiter) Available(key string) float64 {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	entry, ok := kl.entries[key]
	if !ok {
		return float64(kl.config.Burst)
	}
	return entry.limiter.TokensAt(kl.now())
}

// ActiveCount returns the number of tracked keys.
func (kl *KeyedLimiter) ActiveCount() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.entries)
}

// Cleanup removes keys whose bucket has refilled or that have been idle
// longer than IdleTTL, and returns the remaining count.
func (kl *KeyedLimiter) Cleanup() int {
	kl.mu.Lock()
	now := kl.now()
	burst := float64(kl.config.Burst)
	for key, entry := range kl.entries {
		idle := kl.config.IdleTTL > 0 && now.Sub(entry.lastSeen) >= kl.config.IdleTTL
		if idle || entry.limiter.TokensAt(now) >= burst {
			delete(kl.entries, key)
		}
	}
	count := len(kl.entries)
	kl.mu.Unlock()

	if kl.onUpdate != nil {
		kl.onUpdate(count)
	}
	return count
}

func (kl *KeyedLimiter) cleanupLoop() {
	ticker := time.NewTicker(kl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-kl.stopCh:
			return
		case <-ticker.C:
			kl.Cleanup()
		}
	}
}

// Stop ends the cleanup loop. Safe to call multiple times.
func (kl *KeyedLimiter) Stop() {
	kl.stopOnce.Do(func() { close(kl.stopCh) })
}
