package config

import "time"

const defaultDotEnvPath = ".env"

// defaultConfig returns the values used for every field left empty by all
// configuration sources.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			BcryptCost: 12,
			LogLevel:   "info",
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Session: Session{
			MaxAge: 12 * time.Hour,
		},
		Limiter: Limiter{
			MaxAttempts:  5,
			Window:       15 * time.Minute,
			LockDuration: 10 * time.Minute,
		},
		Workers: Workers{
			PruneInterval: time.Minute,
		},
	}
}
