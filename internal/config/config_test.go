package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
user = "app"
password = "secret"
dbname = "appointments"

[seller_service]
url = "http://seller:8080"

[user_service]
url = "http://user:8080"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 30, cfg.Scheduling.SlotStepMinutes)
	assert.Equal(t, 9, cfg.Scheduling.DefaultWorkStartHour)
	assert.Equal(t, 18, cfg.Scheduling.DefaultWorkEndHour)
	assert.Equal(t, "log", cfg.Notifier.Driver)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t,
		"host=localhost port=5432 user=app password=secret dbname=appointments sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_KafkaWithoutBrokers(t *testing.T) {
	path := writeConfig(t, `
[seller_service]
url = "http://seller:8080"

[user_service]
url = "http://user:8080"

[notifier]
driver = "kafka"
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_InvalidWorkHours(t *testing.T) {
	path := writeConfig(t, `
[scheduling]
default_work_start_hour = 18
default_work_end_hour = 9

[seller_service]
url = "http://seller:8080"

[user_service]
url = "http://user:8080"
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
