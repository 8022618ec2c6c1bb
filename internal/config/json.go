package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for the JSON file source.
// Durations are written as strings ("30s", "12h").
type StructuredJSONConfig struct {
	App struct {
		BcryptCost   int    `json:"bcrypt_cost"`
		LogLevel     string `json:"log_level"`
		SeedDemoUser bool   `json:"seed_demo_user"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Session struct {
		Secret       string   `json:"secret"`
		SecureCookie bool     `json:"secure_cookie"`
		MaxAge       Duration `json:"max_age"`
	} `json:"session,omitempty"`

	Limiter struct {
		RedisURL     string   `json:"redis_url"`
		MaxAttempts  int      `json:"max_attempts"`
		Window       Duration `json:"window"`
		LockDuration Duration `json:"lock_duration"`
	} `json:"limiter,omitempty"`

	Workers struct {
		PruneInterval Duration `json:"prune_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			BcryptCost:   jsonCfg.App.BcryptCost,
			LogLevel:     jsonCfg.App.LogLevel,
			SeedDemoUser: jsonCfg.App.SeedDemoUser,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Session: Session{
			Secret:       jsonCfg.Session.Secret,
			SecureCookie: jsonCfg.Session.SecureCookie,
			MaxAge:       time.Duration(jsonCfg.Session.MaxAge),
		},
		Limiter: Limiter{
			RedisURL:     jsonCfg.Limiter.RedisURL,
			MaxAttempts:  jsonCfg.Limiter.MaxAttempts,
			Window:       time.Duration(jsonCfg.Limiter.Window),
			LockDuration: time.Duration(jsonCfg.Limiter.LockDuration),
		},
		Workers: Workers{
			PruneInterval: time.Duration(jsonCfg.Workers.PruneInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
