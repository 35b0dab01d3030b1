// Package timeouts provides the timeout values used with context.WithTimeout
// around I/O: database pings, catalog reads, and seeding.
//
// Values can be overridden once at startup with Configure.
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Defaults used until Configure is called.
const (
	DefaultPing = 2 * time.Second
	DefaultLoad = 15 * time.Second
	DefaultSeed = 30 * time.Second
)

var (
	mu   sync.RWMutex
	ping = DefaultPing
	load = DefaultLoad
	seed = DefaultSeed
)

// Ping is the timeout for health checks and connectivity checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Load is the timeout for reading the whole catalog from the database.
func Load() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return load
}

// Seed is the timeout for seeding an empty catalog collection and creating
// its indexes.
func Seed() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return seed
}

// Config holds timeout overrides. Zero values keep the current value.
type Config struct {
	Ping time.Duration
	Load time.Duration
	Seed time.Duration
}

// Configure applies non-zero values from cfg.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Load > 0 {
		load = cfg.Load
	}
	if cfg.Seed > 0 {
		seed = cfg.Seed
	}
}

// Reset restores the defaults. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping, load, seed = DefaultPing, DefaultLoad, DefaultSeed
}

// WithTimeout is context.WithTimeout whose cancel func logs a warning when
// the deadline was hit.
//
//	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Load(), logger, "load catalog")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
