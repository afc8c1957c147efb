package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"storefront/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
http:
  env: dev
  port: 9000
  read_timeout: 3s
psql_conn:
  user: shop
  password: secret
  host: db
  port: 5433
  database: shop
  sslmode: disable
rabbitmq:
  enabled: true
  queue: placed
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := config.LoadFromFile(writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, config.EnvDev, cfg.HTTP.Env)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.WriteTimeout)
	assert.True(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, "placed", cfg.RabbitMQ.Queue)
	assert.Equal(t, 10, cfg.RabbitMQ.ChannelPoolSize)
	assert.Equal(t, "usd", cfg.Payment.Currency)
	assert.Equal(t, 4, cfg.Fulfillment.Workers)
	assert.Equal(t, "postgres://shop:secret@db:5433/shop?sslmode=disable", cfg.ConnectionString())
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("PSQL_CONN_PASSWORD", "from-env")

	cfg, err := config.LoadFromFile(writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.HTTP.Port)
	assert.Equal(t, "from-env", cfg.Psql.Password)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := config.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
