package services

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"artdirector/internal/config"
	"artdirector/internal/llm/client"
	"artdirector/internal/repositories"
)

// ListerFactory builds a catalog lister bound to one API key.
type ListerFactory func(ctx context.Context, apiKey string) (client.ModelLister, error)

func NewGenAIListerFactory() ListerFactory {
	return func(ctx context.Context, apiKey string) (client.ModelLister, error) {
		return client.NewGenAILister(ctx, apiKey)
	}
}

type ModelCatalogService interface {
	// Options never fails: any catalog problem yields the built-in list.
	Options(ctx context.Context, apiKey string) []string
	Query(ctx context.Context, apiKey string) client.Result[[]string]
}

type modelCatalogService struct {
	repo      repositories.ModelCatalogRepository
	provider  string
	model     string
	newLister ListerFactory

	mu     sync.Mutex
	memory map[string][]string
}

// NewModelCatalogService caches per credential fingerprint in repo (may be
// nil) and in memory.
func NewModelCatalogService(repo repositories.ModelCatalogRepository, provider, configuredModel string, newLister ListerFactory) ModelCatalogService {
	return &modelCatalogService{
		repo:      repo,
		provider:  strings.ToLower(strings.TrimSpace(provider)),
		model:     strings.TrimSpace(configuredModel),
		newLister: newLister,
		memory:    make(map[string][]string),
	}
}

func (s *modelCatalogService) Options(ctx context.Context, apiKey string) []string {
	if s.provider != "" && s.provider != config.ProviderGemini {
		return []string{s.model}
	}
	if apiKey == "" {
		return slices.Clone(client.FallbackModels)
	}

	fp := client.Fingerprint(apiKey)
	if cached := s.cached(ctx, fp); cached != nil {
		return slices.Clone(cached)
	}

	res := s.Query(ctx, apiKey)
	options := res.OrElse(client.FallbackModels)
	s.remember(fp, options)
	if res.OK() {
		s.persist(ctx, fp, options)
	} else {
		log.Warn().Err(res.Err).Str("fingerprint", fp).Msg("model catalog unavailable, using built-in list")
	}
	return slices.Clone(options)
}

func (s *modelCatalogService) Query(ctx context.Context, apiKey string) client.Result[[]string] {
	if apiKey == "" {
		return client.Fail[[]string](client.ErrNoAPIKey)
	}
	if s.newLister == nil {
		return client.Fail[[]string](client.ErrUnknownProvider)
	}
	lister, err := s.newLister(ctx, apiKey)
	if err != nil {
		return client.Fail[[]string](err)
	}
	return client.QueryModels(ctx, lister)
}

func (s *modelCatalogService) cached(ctx context.Context, fp string) []string {
	if s.repo != nil {
		options, err := s.repo.Get(ctx, fp, s.catalogProvider())
		if err != nil {
			log.Warn().Err(err).Str("fingerprint", fp).Msg("reading model catalog cache")
		} else if len(options) > 0 {
			return options
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memory[fp]
}

// remember caches options for the life of the process only.
func (s *modelCatalogService) remember(fp string, options []string) {
	s.mu.Lock()
	s.memory[fp] = slices.Clone(options)
	s.mu.Unlock()
}

// persist stores a live catalog across runs. Only successful queries reach
// the store.
func (s *modelCatalogService) persist(ctx context.Context, fp string, options []string) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Upsert(ctx, fp, s.catalogProvider(), options); err != nil {
		log.Warn().Err(err).Str("fingerprint", fp).Msg("writing model catalog cache")
	}
}

func (s *modelCatalogService) catalogProvider() string {
	if s.provider == "" {
		return config.ProviderGemini
	}
	return s.provider
}
