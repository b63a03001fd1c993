package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"artdirector/internal/models"
)

// Options carries the sampling parameters shared by every provider.
type Options struct {
	Model       string
	BaseURL     string
	Temperature float32
	TopP        float32
	TopK        int32
	MaxTokens   int
}

// LLMClient binds one chat model to the credential and model it was built for.
type LLMClient struct {
	ChatModel   model.BaseChatModel
	Provider    string
	Model       string
	Fingerprint string
}

// ChatModelFactory builds a chat client. Services take it as a dependency so
// tests can substitute a scripted model.
type ChatModelFactory func(ctx context.Context, provider, apiKey string, opts Options) (*LLMClient, error)

// NewLLMClient dispatches on provider.
func NewLLMClient(ctx context.Context, provider, apiKey string, opts Options) (*LLMClient, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "gemini":
		return NewGeminiClient(ctx, apiKey, opts)
	case "openai":
		return NewOpenAIClient(ctx, apiKey, opts)
	case "claude":
		return NewClaudeClient(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
}

func NewGeminiClient(ctx context.Context, apiKey string, opts Options) (*LLMClient, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	cm, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      gc,
		Model:       opts.Model,
		MaxTokens:   intPtr(opts.MaxTokens),
		Temperature: float32Ptr(opts.Temperature),
		TopP:        float32Ptr(opts.TopP),
		TopK:        int32Ptr(opts.TopK),
	})
	if err != nil {
		log.Error().Err(err).Str("model", opts.Model).Msg("creating gemini chat model")
		return nil, err
	}
	return &LLMClient{ChatModel: cm, Provider: "gemini", Model: opts.Model, Fingerprint: Fingerprint(apiKey)}, nil
}

func NewOpenAIClient(ctx context.Context, apiKey string, opts Options) (*LLMClient, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      apiKey,
		BaseURL:     opts.BaseURL,
		Model:       opts.Model,
		MaxTokens:   intPtr(opts.MaxTokens),
		Temperature: float32Ptr(opts.Temperature),
		TopP:        float32Ptr(opts.TopP),
	})
	if err != nil {
		log.Error().Err(err).Str("model", opts.Model).Msg("creating openai chat model")
		return nil, err
	}
	return &LLMClient{ChatModel: cm, Provider: "openai", Model: opts.Model, Fingerprint: Fingerprint(apiKey)}, nil
}

func NewClaudeClient(ctx context.Context, apiKey string, opts Options) (*LLMClient, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	cfg := &claude.Config{
		APIKey:      apiKey,
		Model:       opts.Model,
		MaxTokens:   opts.MaxTokens,
		Temperature: float32Ptr(opts.Temperature),
		TopP:        float32Ptr(opts.TopP),
		TopK:        int32Ptr(opts.TopK),
	}
	if opts.BaseURL != "" {
		cfg.BaseURL = &opts.BaseURL
	}
	cm, err := claude.NewChatModel(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Str("model", opts.Model).Msg("creating claude chat model")
		return nil, err
	}
	return &LLMClient{ChatModel: cm, Provider: "claude", Model: opts.Model, Fingerprint: Fingerprint(apiKey)}, nil
}

// BuildHistory turns a stored transcript into the model-facing message list:
// the system instruction first, empty entries skipped. A user turn left
// without a reply (its generation failed) is replaced by the next user turn.
func BuildHistory(system string, transcript []models.ChatMessage) []*schema.Message {
	out := make([]*schema.Message, 0, len(transcript)+1)
	if strings.TrimSpace(system) != "" {
		out = append(out, schema.SystemMessage(system))
	}
	for _, msg := range transcript {
		if msg.Content == "" {
			continue
		}
		switch msg.Role {
		case models.RoleUser:
			if n := len(out); n > 0 && out[n-1].Role == schema.User {
				out[n-1] = schema.UserMessage(msg.Content)
				continue
			}
			out = append(out, schema.UserMessage(msg.Content))
		case models.RoleAssistant:
			out = append(out, schema.AssistantMessage(msg.Content, nil))
		}
	}
	return out
}

// Generate sends history to the bound model and returns its text.
func (c *LLMClient) Generate(ctx context.Context, history []*schema.Message) Result[string] {
	if c == nil || c.ChatModel == nil {
		return Fail[string](errors.New("chat model is not initialised"))
	}
	msg, err := c.ChatModel.Generate(ctx, history)
	if err != nil {
		return Fail[string](fmt.Errorf("%s generate: %w", c.Provider, err))
	}
	if msg == nil {
		return Fail[string](fmt.Errorf("%s returned no message", c.Provider))
	}
	return Ok(msg.Content)
}

func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func float32Ptr(v float32) *float32 {
	return &v
}

func int32Ptr(v int32) *int32 {
	if v == 0 {
		return nil
	}
	return &v
}
