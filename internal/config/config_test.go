package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "credentials.json", cfg.Gmail.CredentialsPath)
	assert.Equal(t, "token.json", cfg.Gmail.TokenPath)
	assert.Equal(t, 10, cfg.Pipeline.MaxMessages)
	assert.Equal(t, 0.5, cfg.Pipeline.MinConfidence)
	assert.Equal(t, 2, cfg.Pipeline.MinFieldCount)
	assert.Equal(t, 1, cfg.Pipeline.Workers)
	assert.Equal(t, 5*time.Minute, cfg.Pipeline.Interval)
	assert.NotEmpty(t, cfg.Ledger.Path)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
gmail:
  credentials_path: /srv/hankyo/credentials.json
  query: "from:portal@example.jp"
webhook:
  url: https://hooks.example.jp/ingest
pipeline:
  max_messages: 25
  min_confidence: 0.6
  archive_on_success: true
  workers: 4
ledger:
  path: /var/lib/hankyo/ledger.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/hankyo/credentials.json", cfg.Gmail.CredentialsPath)
	assert.Equal(t, "/srv/hankyo/token.json", cfg.Gmail.TokenPath, "token defaults beside credentials")
	assert.Equal(t, "from:portal@example.jp", cfg.Gmail.Query)
	assert.Equal(t, "https://hooks.example.jp/ingest", cfg.Webhook.URL)
	assert.Equal(t, 25, cfg.Pipeline.MaxMessages)
	assert.Equal(t, 0.6, cfg.Pipeline.MinConfidence)
	assert.True(t, cfg.Pipeline.ArchiveOnSuccess)
	assert.Equal(t, 4, cfg.Pipeline.Workers)
	assert.Equal(t, "/var/lib/hankyo/ledger.db", cfg.Ledger.Path)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
webhook:
  url: https://hooks.example.jp/ingest
pipeline:
  max_messages: 25
`)
	t.Setenv("HANKYO_WEBHOOK_URL", "https://hooks.example.jp/staging")
	t.Setenv("HANKYO_PIPELINE_MAX_MESSAGES", "3")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://hooks.example.jp/staging", cfg.Webhook.URL)
	assert.Equal(t, 3, cfg.Pipeline.MaxMessages)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "webhook: [not: closed")
	_, err := Load(path)
	assert.Error(t, err)
}
