package inference

import (
	"os"
	"strconv"
	"time"
)

// Config controls scheduler batching, retry, and cache behavior.
type Config struct {
	// BatchSize is the maximum number of queued requests dispatched
	// concurrently in one drain cycle.
	BatchSize int

	// BatchWait is the pause between batches, bounding burst load on
	// the provider.
	BatchWait time.Duration

	// MaxRetries is the total number of attempts per request, including
	// the first.
	MaxRetries int

	// InitialDelay is the backoff before the first retry. The delay
	// doubles on each subsequent retry.
	InitialDelay time.Duration

	// CacheTTL is how long a cached response stays valid.
	CacheTTL time.Duration
}

// DefaultConfig returns a Config with the standard scheduler tuning.
func DefaultConfig() Config {
	return Config{
		BatchSize:    50,
		BatchWait:    100 * time.Millisecond,
		MaxRetries:   3,
		InitialDelay: 1 * time.Second,
		CacheTTL:     1 * time.Hour,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset or malformed values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if n, ok := envInt("MEDSIM_BATCH_SIZE"); ok && n > 0 {
		cfg.BatchSize = n
	}
	if ms, ok := envInt("MEDSIM_BATCH_WAIT_MS"); ok && ms >= 0 {
		cfg.BatchWait = time.Duration(ms) * time.Millisecond
	}
	if n, ok := envInt("MEDSIM_MAX_RETRIES"); ok && n > 0 {
		cfg.MaxRetries = n
	}
	if ms, ok := envInt("MEDSIM_INITIAL_DELAY_MS"); ok && ms >= 0 {
		cfg.InitialDelay = time.Duration(ms) * time.Millisecond
	}
	if d := os.Getenv("MEDSIM_CACHE_TTL"); d != "" {
		if ttl, err := time.ParseDuration(d); err == nil && ttl > 0 {
			cfg.CacheTTL = ttl
		}
	}

	return cfg
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
