package medcase

import (
	"os"
	"time"
)

// Config controls the behavior of the Pipeline.
type Config struct {
	// Validators is the ordered list of validators run on every generated
	// case. They execute in order; the first failure stops the pipeline
	// and triggers the fallback bank.
	Validators []Validator

	// MaxTokens is the token budget for generation responses.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64

	// GenTimeout bounds a single case generation, including the
	// scheduler's queue wait and retries. On expiry the pipeline serves
	// a fallback case.
	GenTimeout time.Duration
}

// DefaultConfig returns a Config with the standard validator chain and
// recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators:  DefaultValidators(),
		MaxTokens:   1024,
		Temperature: 0.7,
		GenTimeout:  30 * time.Second,
	}
}

// ConfigFromEnv returns DefaultConfig adjusted by MEDSIM_GEN_TIMEOUT
// (a Go duration string, e.g. "45s").
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("MEDSIM_GEN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.GenTimeout = d
		}
	}
	return cfg
}
