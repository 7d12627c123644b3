package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DATA_FILE", "API_PORT", "DONATE_URL", "DB_HOST", "TELEGRAM_ADMINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "data.json", cfg.DataFile)
	assert.Equal(t, "8080", cfg.APIPort)
	assert.Equal(t, "https://example.com/donate", cfg.DonateURL)
	assert.Empty(t, cfg.DSN)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_ADMINS", "1, 2,3")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "clubok")
	t.Setenv("DB_NAME", "clubok")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, []int64{1, 2, 3}, cfg.Admins)
	assert.Equal(t, "host=localhost port=5432 user=clubok password= dbname=clubok sslmode=disable", cfg.DSN)
	assert.NoError(t, cfg.RequireBotToken())
}

func TestLoad_BadAdmins(t *testing.T) {
	t.Setenv("TELEGRAM_ADMINS", "1,oops")
	_, err := Load()
	assert.Error(t, err)
}

func TestRequireBotToken_Missing(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.RequireBotToken())
}
