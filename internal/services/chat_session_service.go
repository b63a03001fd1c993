package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"artdirector/internal/config"
	"artdirector/internal/events"
	"artdirector/internal/llm/client"
	"artdirector/internal/llm/prompt"
	"artdirector/internal/llm/reply"
	"artdirector/internal/models"
	"artdirector/internal/repositories"
	"artdirector/internal/settings"
)

// Greeting opens every display transcript.
const Greeting = "Paste the Step 1 JSON or enter the settings directly.\n\n" +
	"This generates an **exterior + interior four-panel prompt**.\n\n" +
	"Example: `Paris apartment, gallery curator, camel-tone interior`"

// CredentialResolver supplies the API key for a turn.
type CredentialResolver interface {
	ResolveAPIKey(userInput string) (string, KeySource)
}

// SessionState is the decoded form of a persisted chat session.
type SessionState struct {
	Key            string               `json:"key"`
	Model          string               `json:"model"`
	KeyFingerprint string               `json:"keyFingerprint,omitempty"`
	Settings       settings.Record      `json:"settings"`
	Upstream       json.RawMessage      `json:"upstream,omitempty"`
	Messages       []models.ChatMessage `json:"messages"`
	ModelMessages  []models.ChatMessage `json:"modelMessages"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

type ChatSessionService interface {
	Startup(ctx context.Context) error
	Create(ctx context.Context) (*SessionState, error)
	Get(ctx context.Context, key string) (*SessionState, error)
	LoadUpstream(ctx context.Context, key, text string) (bool, error)
	EditSettings(ctx context.Context, key string, edit settings.Record) (bool, error)
	SelectModel(ctx context.Context, key, model string) error
	Submit(ctx context.Context, key, direction, keyInput string) (*models.TurnResult, error)
	Reset(ctx context.Context, key string) (*SessionState, error)
	List(ctx context.Context) ([]SessionState, error)
	Delete(ctx context.Context, key string) error
}

// chatRuntime is a chat client bound to the model and credential it was built
// for. It is rebuilt when either changes.
type chatRuntime struct {
	client      *client.LLMClient
	model       string
	fingerprint string
}

type chatSessionService struct {
	repo      repositories.ChatSessionRepository
	keys      CredentialResolver
	newClient client.ChatModelFactory
	cfg       *config.Config
	system    string
	ctx       context.Context

	mu       sync.Mutex
	runtimes map[string]*chatRuntime
}

func NewChatSessionService(
	repo repositories.ChatSessionRepository,
	keys CredentialResolver,
	newClient client.ChatModelFactory,
	cfg *config.Config,
	systemInstruction string,
) ChatSessionService {
	if cfg == nil {
		cfg = config.Default()
	}
	if newClient == nil {
		newClient = client.NewLLMClient
	}
	return &chatSessionService{
		repo:      repo,
		keys:      keys,
		newClient: newClient,
		cfg:       cfg,
		system:    systemInstruction,
		runtimes:  make(map[string]*chatRuntime),
	}
}

func (s *chatSessionService) Startup(ctx context.Context) error {
	s.ctx = ctx
	if s.repo == nil {
		return errors.New("chat session repository is required")
	}
	if s.keys == nil {
		return errors.New("credential resolver is required")
	}
	return nil
}

func (s *chatSessionService) Create(ctx context.Context) (*SessionState, error) {
	state := &SessionState{
		Key:      uuid.NewString(),
		Model:    s.cfg.Model,
		Settings: settings.Defaults(),
		Messages: greetingTranscript(),
	}
	row, err := toRow(state)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	state.UpdatedAt = row.UpdatedAt
	log.Info().Str("session", state.Key).Str("model", state.Model).Msg("chat session created")
	return state, nil
}

func (s *chatSessionService) Get(ctx context.Context, key string) (*SessionState, error) {
	_, state, err := s.load(ctx, key)
	return state, err
}

// LoadUpstream parses text as the upstream payload and applies its fields.
// A parse failure leaves the session untouched.
func (s *chatSessionService) LoadUpstream(ctx context.Context, key, text string) (bool, error) {
	payload, err := settings.ParseUpstream(text)
	if err != nil {
		return false, err
	}

	row, state, err := s.load(ctx, key)
	if err != nil {
		return false, err
	}

	before := state.Settings
	state.Upstream = payload
	state.Settings = settings.ApplyOverrides(before, settings.ExtractOverrides(payload))
	changed := settings.Changed(before, state.Settings)

	if err := s.save(ctx, row, state); err != nil {
		return false, err
	}
	s.emitContext(ctx, key, "upstream payload applied", changed)
	return changed, nil
}

func (s *chatSessionService) EditSettings(ctx context.Context, key string, edit settings.Record) (bool, error) {
	row, state, err := s.load(ctx, key)
	if err != nil {
		return false, err
	}

	before := state.Settings
	state.Settings = settings.ApplyUserEdit(before, edit)
	changed := settings.Changed(before, state.Settings)

	if err := s.save(ctx, row, state); err != nil {
		return false, err
	}
	s.emitContext(ctx, key, "settings edited", changed)
	return changed, nil
}

func (s *chatSessionService) SelectModel(ctx context.Context, key, model string) error {
	model = strings.TrimSpace(model)
	if model == "" {
		return errors.New("model is required")
	}
	row, state, err := s.load(ctx, key)
	if err != nil {
		return err
	}
	if state.Model == model {
		return nil
	}
	state.Model = model
	if err := s.save(ctx, row, state); err != nil {
		return err
	}
	s.dropRuntime(key)
	log.Info().Str("session", key).Str("model", model).Msg("model selected")
	return nil
}

// Submit runs one turn. Without a credential nothing is recorded. When the
// model fails the user message stays in both transcripts with no reply.
func (s *chatSessionService) Submit(ctx context.Context, key, direction, keyInput string) (*models.TurnResult, error) {
	row, state, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}

	apiKey, source := s.keys.ResolveAPIKey(keyInput)
	if apiKey == "" {
		return nil, ErrNoCredential
	}

	ctx = events.WithSession(ctx, key)
	combined := prompt.Compose(state.Settings, state.Upstream, direction)
	fingerprint := client.Fingerprint(apiKey)

	now := time.Now().UTC().Format(time.RFC3339)
	state.Messages = append(state.Messages, models.ChatMessage{Role: models.RoleUser, Content: direction, CreatedAt: now})
	state.ModelMessages = append(state.ModelMessages, models.ChatMessage{Role: models.RoleUser, Content: combined, CreatedAt: now})
	state.KeyFingerprint = fingerprint
	if err := s.save(ctx, row, state); err != nil {
		return nil, err
	}

	events.Emit(ctx, events.TurnStarted, events.NewInfo("turn started").
		With("model", state.Model).
		With("key_source", string(source)))

	rt, err := s.runtimeFor(ctx, key, state.Model, apiKey, fingerprint)
	if err != nil {
		s.emitFailure(ctx, state.Model, err)
		return nil, fmt.Errorf("connect to model %s: %w", state.Model, err)
	}

	res := rt.client.Generate(ctx, client.BuildHistory(s.system, state.ModelMessages))
	if res.Err != nil {
		s.emitFailure(ctx, state.Model, res.Err)
		return nil, fmt.Errorf("generate: %w", res.Err)
	}

	now = time.Now().UTC().Format(time.RFC3339)
	state.Messages = append(state.Messages, models.ChatMessage{Role: models.RoleAssistant, Content: res.Value, CreatedAt: now})
	state.ModelMessages = append(state.ModelMessages, models.ChatMessage{Role: models.RoleAssistant, Content: res.Value, CreatedAt: now})
	if err := s.save(ctx, row, state); err != nil {
		return nil, err
	}

	parsed := reply.Parse(res.Value)
	done := events.NewSuccess("turn done").With("model", state.Model)
	if parsed.Found {
		done = done.With("handoff", "json")
	}
	events.Emit(ctx, events.TurnDone, done)

	return &models.TurnResult{
		SessionKey: key,
		Model:      state.Model,
		KeySource:  string(source),
		Prompt:     combined,
		Raw:        res.Value,
		Reply:      parsed,
	}, nil
}

// Reset clears both transcripts and the upstream payload. Settings and the
// selected model are kept.
func (s *chatSessionService) Reset(ctx context.Context, key string) (*SessionState, error) {
	row, state, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}
	state.Messages = greetingTranscript()
	state.ModelMessages = nil
	state.Upstream = nil
	if err := s.save(ctx, row, state); err != nil {
		return nil, err
	}
	s.dropRuntime(key)
	events.Emit(events.WithSession(ctx, key), events.SessionReset, events.NewInfo("session reset"))
	return state, nil
}

func (s *chatSessionService) List(ctx context.Context) ([]SessionState, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SessionState, 0, len(rows))
	for i := range rows {
		state, err := fromRow(&rows[i])
		if err != nil {
			log.Warn().Err(err).Str("session", rows[i].SessionKey).Msg("skipping unreadable session")
			continue
		}
		out = append(out, *state)
	}
	return out, nil
}

func (s *chatSessionService) Delete(ctx context.Context, key string) error {
	if _, _, err := s.load(ctx, key); err != nil {
		return err
	}
	if err := s.repo.DeleteByKey(ctx, key); err != nil {
		return err
	}
	s.dropRuntime(key)
	return nil
}

func (s *chatSessionService) load(ctx context.Context, key string) (*models.ChatSession, *SessionState, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil, ErrNoSession
	}
	row, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, nil, fmt.Errorf("load session %s: %w", key, err)
	}
	if row == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoSession, key)
	}
	state, err := fromRow(row)
	if err != nil {
		return nil, nil, err
	}
	return row, state, nil
}

func (s *chatSessionService) save(ctx context.Context, row *models.ChatSession, state *SessionState) error {
	next, err := toRow(state)
	if err != nil {
		return err
	}
	next.ID = row.ID
	next.CreatedAt = row.CreatedAt
	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("save session %s: %w", state.Key, err)
	}
	*row = *next
	state.UpdatedAt = next.UpdatedAt
	return nil
}

func (s *chatSessionService) runtimeFor(ctx context.Context, key, model, apiKey, fingerprint string) (*chatRuntime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rt, ok := s.runtimes[key]; ok && rt.model == model && rt.fingerprint == fingerprint {
		return rt, nil
	}

	c, err := s.newClient(ctx, s.cfg.Provider, apiKey, client.Options{
		Model:       model,
		BaseURL:     s.cfg.BaseURL,
		Temperature: s.cfg.Generation.Temperature,
		TopP:        s.cfg.Generation.TopP,
		TopK:        s.cfg.Generation.TopK,
		MaxTokens:   s.cfg.Generation.MaxOutputTokens,
	})
	if err != nil {
		delete(s.runtimes, key)
		return nil, err
	}
	rt := &chatRuntime{client: c, model: model, fingerprint: fingerprint}
	s.runtimes[key] = rt
	log.Debug().Str("session", key).Str("model", model).Str("fingerprint", fingerprint).Msg("chat runtime built")
	return rt, nil
}

func (s *chatSessionService) dropRuntime(key string) {
	s.mu.Lock()
	delete(s.runtimes, key)
	s.mu.Unlock()
}

func (s *chatSessionService) emitContext(ctx context.Context, key, message string, changed bool) {
	if !changed {
		return
	}
	events.Emit(events.WithSession(ctx, key), events.ContextChanged, events.NewInfo(message))
}

func (s *chatSessionService) emitFailure(ctx context.Context, model string, err error) {
	events.Emit(ctx, events.TurnFailed, events.NewError(err.Error()).With("model", model))
}

func greetingTranscript() []models.ChatMessage {
	return []models.ChatMessage{{Role: models.RoleAssistant, Content: Greeting}}
}

func toRow(state *SessionState) (*models.ChatSession, error) {
	settingsJSON, err := json.Marshal(state.Settings)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	messagesJSON, err := json.Marshal(state.Messages)
	if err != nil {
		return nil, fmt.Errorf("encode messages: %w", err)
	}
	modelMessages := state.ModelMessages
	if modelMessages == nil {
		modelMessages = []models.ChatMessage{}
	}
	modelMessagesJSON, err := json.Marshal(modelMessages)
	if err != nil {
		return nil, fmt.Errorf("encode model messages: %w", err)
	}
	return &models.ChatSession{
		SessionKey:        state.Key,
		Model:             state.Model,
		KeyFingerprint:    state.KeyFingerprint,
		SettingsJSON:      string(settingsJSON),
		UpstreamJSON:      string(state.Upstream),
		MessagesJSON:      string(messagesJSON),
		ModelMessagesJSON: string(modelMessagesJSON),
	}, nil
}

func fromRow(row *models.ChatSession) (*SessionState, error) {
	state := &SessionState{
		Key:            row.SessionKey,
		Model:          row.Model,
		KeyFingerprint: row.KeyFingerprint,
		Settings:       settings.Defaults(),
		UpdatedAt:      row.UpdatedAt,
	}
	if row.SettingsJSON != "" {
		if err := json.Unmarshal([]byte(row.SettingsJSON), &state.Settings); err != nil {
			return nil, fmt.Errorf("decode settings for %s: %w", row.SessionKey, err)
		}
	}
	if row.UpstreamJSON != "" {
		state.Upstream = json.RawMessage(row.UpstreamJSON)
	}
	if row.MessagesJSON != "" {
		if err := json.Unmarshal([]byte(row.MessagesJSON), &state.Messages); err != nil {
			return nil, fmt.Errorf("decode messages for %s: %w", row.SessionKey, err)
		}
	}
	if row.ModelMessagesJSON != "" {
		if err := json.Unmarshal([]byte(row.ModelMessagesJSON), &state.ModelMessages); err != nil {
			return nil, fmt.Errorf("decode model messages for %s: %w", row.SessionKey, err)
		}
	}
	return state, nil
}
