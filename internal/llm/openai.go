package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/jmilbury/agentpress/internal/config"
	"github.com/jmilbury/agentpress/internal/models"
)

const defaultTemperature = 0.7

// OpenAI talks to an OpenAI-compatible completion endpoint (OpenRouter in
// the default configuration).
type OpenAI struct {
	client  *openai.Client
	cfg     *config.OpenRouterConfig
	timeout time.Duration
}

// NewOpenAI builds a provider from explicit configuration. Returns nil (no
// provider) when the API key is unset, so "not configured" is represented by
// absence rather than a sentinel value threaded through call sites.
func NewOpenAI(cfg *config.OpenRouterConfig) *OpenAI {
	if cfg.APIKey == "" {
		return nil
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.APIEndpoint),
	)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &OpenAI{
		client:  client,
		cfg:     cfg,
		timeout: timeout,
	}
}

func (o *OpenAI) Generate(ctx context.Context, role models.Role, analysisContext string, reportNumber int, opts ...Option) (string, error) {
	options := &Options{
		Model:       o.cfg.Model,
		Temperature: defaultTemperature,
		MaxTokens:   1500,
	}
	for _, opt := range opts {
		opt(options)
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	userContent := fmt.Sprintf("Data insights:\n%s\n\nThis is report number %d.", analysisContext, reportNumber)

	resp, err := o.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Model: openai.F(options.Model),
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(promptForRole(role)),
				openai.UserMessage(userContent),
			}),
			Temperature: openai.F(options.Temperature),
			MaxTokens:   openai.F(options.MaxTokens),
		},
	)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("completion returned no content")
	}

	slog.Debug("generated article content",
		"role", role.String(),
		"report", reportNumber,
		"tokens", resp.Usage.TotalTokens,
	)
	return resp.Choices[0].Message.Content, nil
}

var _ Provider = (*OpenAI)(nil)
