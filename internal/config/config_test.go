package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "uploads", cfg.Server.UploadDir)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.OpenRouter.APIEndpoint)
	assert.Equal(t, "openai/gpt-3.5-turbo", cfg.OpenRouter.Model)
	assert.Equal(t, 60*time.Second, cfg.OpenRouter.Timeout)
	assert.Equal(t, "data/agentpress", cfg.Store.Path)
	assert.True(t, cfg.Scheduler.Enabled)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("OPENROUTER_API_KEY", "test-key")
	t.Setenv("OPENROUTER_TIMEOUT", "5s")
	t.Setenv("SCHEDULER_ENABLED", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "test-key", cfg.OpenRouter.APIKey)
	assert.Equal(t, 5*time.Second, cfg.OpenRouter.Timeout)
	assert.False(t, cfg.Scheduler.Enabled)
}
