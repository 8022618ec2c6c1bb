package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

const testSecret = "0123456789abcdef0123456789abcdef"

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func minimalConfig() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{DB: DB{DSN: "sqlite://:memory:"}},
		Session: Session{Secret: testSecret},
	}
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs fails
// validation because there is no DSN.
func TestBuild_EmptyBuilder(t *testing.T) {
	_, err := newConfigBuilder().build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_AppliesDefaults verifies that unset fields receive defaults.
func TestBuild_AppliesDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, minimalConfig())

	cfg, err := b.build()
	require.NoError(t, err)

	def := defaultConfig()
	assert.Equal(t, def.App.BcryptCost, cfg.App.BcryptCost)
	assert.Equal(t, def.Server.HTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, def.Server.RequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, def.Session.MaxAge, cfg.Session.MaxAge)
	assert.Equal(t, def.Limiter.MaxAttempts, cfg.Limiter.MaxAttempts)
	assert.Equal(t, def.Workers.PruneInterval, cfg.Workers.PruneInterval)
	assert.Empty(t, cfg.Limiter.RedisURL)
}

// TestBuild_LaterConfigOverrides verifies that non-zero fields from later
// configs win and zero fields do not erase earlier values.
func TestBuild_LaterConfigOverrides(t *testing.T) {
	b := newConfigBuilder()
	first := minimalConfig()
	first.Server.HTTPAddress = "localhost:9000"
	first.App.LogLevel = "debug"
	b.configs = append(b.configs,
		first,
		&StructuredConfig{Server: Server{HTTPAddress: "0.0.0.0:8081"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, testSecret, cfg.Session.Secret)
}

// TestBuild_ShortSecret verifies that a short session secret is rejected.
func TestBuild_ShortSecret(t *testing.T) {
	b := newConfigBuilder()
	cfg := minimalConfig()
	cfg.Session.Secret = "short"
	b.configs = append(b.configs, cfg)

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidSessionConfigs)
}

// TestBuild_BcryptCostOutOfRange verifies the bcrypt cost bounds.
func TestBuild_BcryptCostOutOfRange(t *testing.T) {
	b := newConfigBuilder()
	cfg := minimalConfig()
	cfg.App.BcryptCost = 99
	b.configs = append(b.configs, cfg)

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

// TestBuild_LimiterAndWorkerDurations verifies that negative durations,
// which survive the defaults because they are non-zero, are rejected.
func TestBuild_LimiterAndWorkerDurations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{"negative prune interval", func(cfg *StructuredConfig) { cfg.Workers.PruneInterval = -time.Second }, ErrInvalidWorkersConfigs},
		{"negative window", func(cfg *StructuredConfig) { cfg.Limiter.Window = -time.Second }, ErrInvalidLimiterConfigs},
		{"negative lock duration", func(cfg *StructuredConfig) { cfg.Limiter.LockDuration = -time.Minute }, ErrInvalidLimiterConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newConfigBuilder()
			cfg := minimalConfig()
			tt.mutate(cfg)
			b.configs = append(b.configs, cfg)

			_, err := b.build()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── withDotEnv ────────────────────────────────────────────────────────────────

// TestWithDotEnv_MissingFileIsIgnored verifies that an absent .env file is
// not an error.
func TestWithDotEnv_MissingFileIsIgnored(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withDotEnv(filepath.Join(t.TempDir(), ".env")))
	assert.NoError(t, b.err)
}

// TestWithDotEnv_LoadsVariables verifies that variables from the .env file
// are visible to withEnv.
func TestWithDotEnv_LoadsVariables(t *testing.T) {
	clearEnvVars(t)
	t.Cleanup(func() { clearEnvVars(t) })

	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte("STORAGE_DB_DATABASE_URI=sqlite://dotenv.db\nSESSION_MAX_AGE=3h\n"), 0o600))

	b := newConfigBuilder().withDotEnv(p).withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "sqlite://dotenv.db", b.configs[0].Storage.DB.DSN)
	assert.Equal(t, 3*time.Hour, b.configs[0].Session.MaxAge)
}

// TestWithDotEnv_DoesNotOverrideEnvironment verifies that real environment
// variables take precedence over the .env file.
func TestWithDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	setEnvVars(t, map[string]string{"APP_LOG_LEVEL": "error"})

	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte("APP_LOG_LEVEL=debug\n"), 0o600))

	b := newConfigBuilder().withDotEnv(p).withEnv()

	require.NoError(t, b.err)
	assert.Equal(t, "error", b.configs[0].App.LogLevel)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{
		"SESSION_SECRET":  testSecret,
		"APP_BCRYPT_COST": "8",
	})

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, testSecret, b.configs[0].Session.Secret)
	assert.Equal(t, 8, b.configs[0].App.BcryptCost)
}

// TestWithEnv_SetsErrorOnBadValue verifies that a malformed variable sets
// b.err and appends nothing.
func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	setEnvVars(t, map[string]string{"LIMITER_MAX_ATTEMPTS": "many"})

	b := newConfigBuilder()
	b.withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_AppendsConfig verifies that parsed flags are appended.
func TestWithFlags_AppendsConfig(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags([]string{"-d", "sqlite://flags.db"}))

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "sqlite://flags.db", b.configs[0].Storage.DB.DSN)
}

// TestWithFlags_SetsErrorOnUnknownFlag verifies that parse errors are kept.
func TestWithFlags_SetsErrorOnUnknownFlag(t *testing.T) {
	b := newConfigBuilder()
	b.withFlags([]string{"-nope"})

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	assert.Same(t, b, b.withJSON())

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.LogLevel = "warn"
	payload.Session.Secret = "json-secret"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "warn", b.configs[1].App.LogLevel)
	assert.Equal(t, "json-secret", b.configs[1].Session.Secret)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesLastPath verifies that when multiple configs have a
// JSONFilePath, the last non-empty one wins.
func TestWithJSON_UsesLastPath(t *testing.T) {
	first := StructuredJSONConfig{}
	first.App.LogLevel = "first"
	last := StructuredJSONConfig{}
	last.App.LogLevel = "last-wins"

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, first)},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, last)},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].App.LogLevel)
}

// TestBuilder_JSONOverridesFlags verifies the full chain priority.
func TestBuilder_JSONOverridesFlags(t *testing.T) {
	clearEnvVars(t)

	payload := StructuredJSONConfig{}
	payload.Server.HTTPAddress = "127.0.0.1:9999"
	path := writeTempJSONConfig(t, payload)

	cfg, err := newConfigBuilder().
		withEnv().
		withFlags([]string{
			"-a", "localhost:8000",
			"-d", "sqlite://:memory:",
			"-session-secret", testSecret,
			"-c", path,
		}).
		withJSON().
		build()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.HTTPAddress)
	assert.Equal(t, "sqlite://:memory:", cfg.Storage.DB.DSN)
}
