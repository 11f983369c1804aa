package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/inventory/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
service_name = "inventory"
environment = "prod"

[http]
port = 8081

[database]
dsn = "user:pass@tcp(localhost:3306)/inventory?parseTime=true"
max_open_conns = 50

[kafka]
enabled = true
brokers = ["localhost:9092"]

[logger]
level = "debug"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "inventory", cfg.ServiceName)
	assert.Equal(t, "prod", cfg.Environment)
	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
dsn = "user:pass@tcp(localhost:3306)/inventory?parseTime=true"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "inventory", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9090, cfg.Metrics.Port)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, `
[http]
port = 8080

[database]
dsn = "user:pass@tcp(localhost:3306)/inventory?parseTime=true"
`)

	t.Setenv("APP_HTTP_PORT", "9999")
	t.Setenv("APP_LOGGER_LEVEL", "warn")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.HTTP.Port)
	assert.Equal(t, "warn", cfg.Logger.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing dsn", `service_name = "inventory"`},
		{"bad port", `
[http]
port = -1

[database]
dsn = "user:pass@tcp(localhost:3306)/inventory"
`},
		{"kafka enabled without brokers", `
[database]
dsn = "user:pass@tcp(localhost:3306)/inventory"

[kafka]
enabled = true
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			_, err := config.Load(path)
			assert.Error(t, err)
		})
	}
}
