package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 8090

[database]
host = "db"
user = "salon"
password = "secret"
dbname = "salon"

[logs]
level = "debug"

[metrics]
enabled = true

[redis]
addr = "redis:6379"
ttl_seconds = 30

[kafka]
brokers = "kafka:9092"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 30, cfg.Redis.TTLSeconds)
	assert.Equal(t, "appointment.status_changed", cfg.Kafka.StatusChangedTopic)
	assert.Equal(t, 30, cfg.Booking.SlotStepMinutes)
	assert.Equal(t, "host=db port=5432 user=salon password=secret dbname=salon sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db"
user = "salon"
password = "from-file"
dbname = "salon"
`)
	t.Setenv("SALON_DB_PASSWORD", "from-env")
	t.Setenv("SALON_KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "k1:9092,k2:9092", cfg.Kafka.Brokers)
}

func TestLoad_MissingDatabaseHost(t *testing.T) {
	path := writeConfig(t, `
[database]
user = "salon"
dbname = "salon"
`)

	cfg, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Nil(t, cfg)
}

func TestLoad_NonexistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/config.toml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv("SALON_CONFIG", "")
	assert.Equal(t, "config.toml", PathFromEnv())

	t.Setenv("SALON_CONFIG", "/etc/salon/config.toml")
	assert.Equal(t, "/etc/salon/config.toml", PathFromEnv())
}
