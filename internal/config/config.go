package config

import (
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server     ServerConfig
	OpenRouter OpenRouterConfig
	Store      StoreConfig
	Scheduler  SchedulerConfig
}

type ServerConfig struct {
	Port         string        `envconfig:"SERVER_PORT" default:"8000"`
	Host         string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	UploadDir    string        `envconfig:"SERVER_UPLOAD_DIR" default:"uploads"`
}

// OpenRouterConfig configures the generative text backend. An empty APIKey
// means the backend is not configured and article generation falls back to
// deterministic composition.
type OpenRouterConfig struct {
	APIKey      string        `envconfig:"OPENROUTER_API_KEY"`
	APIEndpoint string        `envconfig:"OPENROUTER_ENDPOINT" default:"https://openrouter.ai/api/v1"`
	Model       string        `envconfig:"OPENROUTER_MODEL" default:"openai/gpt-3.5-turbo"`
	Timeout     time.Duration `envconfig:"OPENROUTER_TIMEOUT" default:"60s"`
}

type StoreConfig struct {
	Path string `envconfig:"STORE_PATH" default:"data/agentpress"`
}

type SchedulerConfig struct {
	Enabled bool `envconfig:"SCHEDULER_ENABLED" default:"true"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("configuration loaded successfully")
	return &cfg, nil
}
