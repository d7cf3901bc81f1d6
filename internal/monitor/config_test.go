package monitor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "./config.json", cfg.ConfigPath)
		assert.Equal(t, 45*time.Second, cfg.NavTimeout)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("CONFIG_PATH", "/etc/pagewatch/config.json")
		t.Setenv("NAV_TIMEOUT", "10s")

		cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "/etc/pagewatch/config.json", cfg.ConfigPath)
		assert.Equal(t, 10*time.Second, cfg.NavTimeout)
	})
}

func TestEnsureCheckConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	created, err := EnsureCheckConfig(path)
	require.NoError(t, err)
	assert.True(t, created)

	// The written template must load back as the defaults.
	cfg, err := LoadCheckConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultCheckConfig(), cfg)

	created, err = EnsureCheckConfig(path)
	require.NoError(t, err)
	assert.False(t, created, "an existing config must never be overwritten")
}

func TestLoadCheckConfig(t *testing.T) {
	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("full config", func(t *testing.T) {
		path := write(t, `{
  "url": "https://status.example.org/",
  "expected_text": "all systems go",
  "retry_delay_seconds": 5,
  "max_attempts": 4,
  "email": {
    "enabled": true,
    "smtp_host": "smtp.example.org",
    "smtp_port": 587,
    "smtp_username": "bot",
    "smtp_password": "hunter2",
    "from": "bot@example.org",
    "to": ["ops@example.org"],
    "subject": "page down"
  }
}`)
		cfg, err := LoadCheckConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "https://status.example.org/", cfg.URL)
		assert.Equal(t, "all systems go", cfg.ExpectedText)
		assert.Equal(t, 5*time.Second, cfg.RetryDelay())
		assert.Equal(t, 4, cfg.MaxAttempts)
		assert.True(t, cfg.Email.Enabled)
		assert.Equal(t, []string{"ops@example.org"}, cfg.Email.To)
	})

	t.Run("absent keys take defaults", func(t *testing.T) {
		path := write(t, `{"url": "https://example.com/", "expected_text": "ok"}`)
		cfg, err := LoadCheckConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 60, cfg.RetryDelaySeconds)
		assert.Equal(t, 2, cfg.MaxAttempts)
		assert.False(t, cfg.Email.Enabled)
	})

	t.Run("explicit zero max_attempts survives", func(t *testing.T) {
		path := write(t, `{"url": "https://example.com/", "expected_text": "ok", "max_attempts": 0}`)
		cfg, err := LoadCheckConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 0, cfg.MaxAttempts)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCheckConfig(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := write(t, `{"url": `)
		_, err := LoadCheckConfig(path)
		assert.Error(t, err)
	})

	invalid := []struct {
		name    string
		content string
	}{
		{"empty url", `{"url": "", "expected_text": "ok"}`},
		{"empty expected_text", `{"url": "https://example.com/", "expected_text": ""}`},
		{"negative retry delay", `{"url": "https://example.com/", "expected_text": "ok", "retry_delay_seconds": -1}`},
		{"negative max attempts", `{"url": "https://example.com/", "expected_text": "ok", "max_attempts": -1}`},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			path := write(t, tc.content)
			_, err := LoadCheckConfig(path)
			assert.Error(t, err)
		})
	}
}
