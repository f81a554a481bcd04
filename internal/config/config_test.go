package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mytasks.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
version: "1.0"
server:
  addr: ":9000"
storage:
  data_dir: /var/lib/mytasks
ui:
  locale: en
  weekly_max_tasks: 3
  rollover_on_startup: false
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", c.Server.Addr)
	assert.Equal(t, "/var/lib/mytasks", c.Storage.DataDir)
	assert.Equal(t, "en", c.UI.Locale)
	assert.Equal(t, 3, c.UI.WeeklyMaxTasks)
	assert.False(t, c.UI.RolloverOnStartup)
	// Unset fields get defaults.
	assert.Equal(t, "static", c.Storage.StaticDir)
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	path := writeConfig(t, `ui: {locale: en}`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8714", c.Server.Addr)
	assert.Equal(t, "data", c.Storage.DataDir)
	assert.Equal(t, 5, c.UI.WeeklyMaxTasks)
	assert.Equal(t, "en", c.UI.Locale)
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a mapping")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	c, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MYTASKS_ADDR", ":7777")
	t.Setenv("MYTASKS_DATA_DIR", "/tmp/tasks")
	t.Setenv("MYTASKS_LOCALE", "en")
	t.Setenv("MYTASKS_ROLLOVER_ON_STARTUP", "false")

	c, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, ":7777", c.Server.Addr)
	assert.Equal(t, "/tmp/tasks", c.Storage.DataDir)
	assert.Equal(t, "en", c.UI.Locale)
	assert.False(t, c.UI.RolloverOnStartup)
}

func TestEnvOverrides_BadBoolIgnored(t *testing.T) {
	t.Setenv("MYTASKS_ROLLOVER_ON_STARTUP", "sometimes")

	c, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.True(t, c.UI.RolloverOnStartup)
}
