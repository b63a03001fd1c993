package client

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"google.golang.org/genai"
)

var (
	ErrNoAPIKey        = errors.New("api key is required")
	ErrEmptyCatalog    = errors.New("no usable models returned")
	ErrUnknownProvider = errors.New("unknown provider")
)

// FallbackModels is offered whenever the live catalog cannot be used.
var FallbackModels = []string{
	"gemini-2.0-flash",
	"gemini-2.0-flash-001",
	"gemini-2.0-flash-lite",
	"gemini-2.5-flash",
	"gemini-2.5-pro",
	"gemini-flash-latest",
	"gemini-pro-latest",
}

// Name fragments of models that do not serve plain text chat.
var excludedFragments = []string{
	"image", "audio", "tts", "native", "preview", "exp",
	"embedding", "gemma", "nano", "aqa", "imagen", "veo", "robotics",
}

const generateContentAction = "generateContent"

// ModelInfo is the subset of catalog metadata the filter needs.
type ModelInfo struct {
	Name             string
	SupportedActions []string
}

// ModelLister lists the models visible to one credential.
type ModelLister interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// GenAILister pages through the Gemini model catalog.
type GenAILister struct {
	client   *genai.Client
	pageSize int32
}

func NewGenAILister(ctx context.Context, apiKey string) (*GenAILister, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GenAILister{client: c, pageSize: 100}, nil
}

func (l *GenAILister) ListModels(ctx context.Context) ([]ModelInfo, error) {
	page, err := l.client.Models.List(ctx, &genai.ListModelsConfig{PageSize: l.pageSize})
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}

	var out []ModelInfo
	for {
		for _, m := range page.Items {
			if m == nil {
				continue
			}
			out = append(out, ModelInfo{Name: m.Name, SupportedActions: m.SupportedActions})
		}
		if page.NextPageToken == "" {
			return out, nil
		}
		page, err = page.Next(ctx)
		if errors.Is(err, genai.ErrPageDone) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("list models: %w", err)
		}
	}
}

// FilterModelNames keeps text-generation Gemini models, strips the "models/"
// prefix and returns the names sorted without duplicates.
func FilterModelNames(items []ModelInfo) []string {
	var names []string
	for _, m := range items {
		if !slices.Contains(m.SupportedActions, generateContentAction) {
			continue
		}
		name := strings.TrimPrefix(m.Name, "models/")
		if !strings.HasPrefix(name, "gemini-") || excluded(name) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

func excluded(name string) bool {
	lower := strings.ToLower(name)
	for _, frag := range excludedFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

// QueryModels asks lister for the catalog and filters it. Every failure is
// reported in the result rather than absorbed here.
func QueryModels(ctx context.Context, lister ModelLister) Result[[]string] {
	if lister == nil {
		return Fail[[]string](errors.New("model lister is required"))
	}
	items, err := lister.ListModels(ctx)
	if err != nil {
		return Fail[[]string](err)
	}
	names := FilterModelNames(items)
	if len(names) == 0 {
		return Fail[[]string](ErrEmptyCatalog)
	}
	return Ok(names)
}
