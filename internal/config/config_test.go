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
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalConfig = `
[database]
host = "localhost"
dbname = "psicoagenda"
password = "file-password"

[mercadopago]
access_token = "file-token"
webhook_url = "https://file.example/webhook"
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "https://api.mercadopago.com", cfg.MercadoPago.BaseURL)
	assert.Contains(t, cfg.Database.DSN(), "dbname=psicoagenda")
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("MP_ACCESS_TOKEN", "env-token")
	t.Setenv("MP_WEBHOOK_URL", "https://env.example/webhook")
	t.Setenv("DB_PASSWORD", "env-password")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.MercadoPago.AccessToken)
	assert.Equal(t, "https://env.example/webhook", cfg.MercadoPago.WebhookURL)
	assert.Equal(t, "env-password", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=env-password")
}

func TestLoad_EnvUnsetKeepsFileValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.MercadoPago.AccessToken)
	assert.Equal(t, "file-password", cfg.Database.Password)
}

func TestLoad_RequiresDatabase(t *testing.T) {
	_, err := Load(writeConfig(t, "[server]\nhttp_port = 9000\n"))
	require.Error(t, err)
}
