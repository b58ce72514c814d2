package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	for key, value := range map[string]string{
		"FIELDSERVICE_PRIMARY.ENV":                 "development",
		"FIELDSERVICE_SERVER.PORT":                 "8080",
		"FIELDSERVICE_SERVER.READ_TIMEOUT":         "30",
		"FIELDSERVICE_SERVER.WRITE_TIMEOUT":        "30",
		"FIELDSERVICE_SERVER.IDLE_TIMEOUT":         "60",
		"FIELDSERVICE_SERVER.CORS_ALLOWED_ORIGINS": "http://localhost:3000",
		"FIELDSERVICE_DATABASE.HOST":               "localhost",
		"FIELDSERVICE_DATABASE.PORT":               "5432",
		"FIELDSERVICE_DATABASE.USER":               "postgres",
		"FIELDSERVICE_DATABASE.PASSWORD":           "postgres",
		"FIELDSERVICE_DATABASE.NAME":               "fieldservice",
		"FIELDSERVICE_DATABASE.SSL_MODE":           "disable",
		"FIELDSERVICE_DATABASE.MAX_OPEN_CONNS":     "25",
		"FIELDSERVICE_DATABASE.MAX_IDLE_CONNS":     "5",
		"FIELDSERVICE_DATABASE.CONN_MAX_LIFETIME":  "300",
		"FIELDSERVICE_DATABASE.CONN_MAX_IDLE_TIME": "60",
		"FIELDSERVICE_REDIS.ADDRESS":               "localhost:6379",
	} {
		t.Setenv(key, value)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, DefaultBcryptCost, cfg.Auth.BcryptCost)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, time.Minute, cfg.Cache.SweepInterval)
	assert.Equal(t, DefaultMailFrom, cfg.Integration.MailFrom)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("FIELDSERVICE_CACHE.BACKEND", "redis")
	t.Setenv("FIELDSERVICE_CACHE.TTL", "90s")
	t.Setenv("FIELDSERVICE_AUTH.BCRYPT_COST", "12")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("FIELDSERVICE_DATABASE.HOST", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_InvalidCacheBackend(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("FIELDSERVICE_CACHE.BACKEND", "memcached")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestObservabilityConfig_Validate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())
}
