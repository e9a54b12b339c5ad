package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[server]
http_port = 9090

[storage]
driver = "memory"

[identity_service]
url = "http://identity:8080"
timeout = 3

[admission]
allow_same_day_cremation = true
timezone = "Asia/Bangkok"

[lifecycle]
strict_terminal = true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 30, cfg.Server.ShutdownTimeout)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "http://identity:8080", cfg.IdentityService.URL)
	assert.True(t, cfg.Admission.AllowSameDayCremation)
	assert.True(t, cfg.Lifecycle.StrictTerminal)
	assert.Equal(t, "notifications.requested", cfg.Notifications.Queue)

	loc, err := cfg.Admission.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Bangkok", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("WAT_DATABASE_PASSWORD", "secret")
	t.Setenv("WAT_SERVER_HTTP_PORT", "7070")
	t.Setenv("WAT_NOTIFICATIONS_ENABLED", "true")
	t.Setenv("WAT_NOTIFICATIONS_URL", "amqp://rabbit:5672/")
	t.Setenv("WAT_NOTIFICATIONS_BUFFER_SIZE", "32")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	assert.True(t, cfg.Notifications.Enabled)
	assert.Equal(t, "amqp://rabbit:5672/", cfg.Notifications.URL)
	assert.Equal(t, 32, cfg.Notifications.BufferSize)
	assert.Contains(t, cfg.Database.DSN(), "password=secret")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "driver", content: "[storage]\ndriver = \"mongo\"\n"},
		{name: "timezone", content: "[admission]\ntimezone = \"Mars/Olympus\"\n"},
		{name: "redis", content: "[redis]\nenabled = true\naddr = \"\"\n"},
		{name: "port", content: "[server]\nhttp_port = 0\n"},
		{name: "broken toml", content: "[server\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
