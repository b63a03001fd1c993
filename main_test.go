package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/99designs/keyring"
	"github.com/cloudwego/eino/schema"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artdirector/internal/config"
	"artdirector/internal/database"
	"artdirector/internal/llm/client"
	"artdirector/internal/repositories"
	"artdirector/internal/services"
	"artdirector/internal/settings"
	"artdirector/internal/tests/mocks"
)

func TestExtractCmd_Text(t *testing.T) {
	t.Cleanup(func() { extractFormat = "text" })
	extractFormat = "text"

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("Intro\n```json\n{\"room\":\"Kitchen\"}\n```\nOutro"))
	cmd.SetOut(&out)

	require.NoError(t, runExtract(cmd, nil))
	assert.Contains(t, out.String(), "STEP 3 handoff (JSON)")
	assert.Contains(t, out.String(), `"room": "Kitchen"`)
	assert.Contains(t, out.String(), "Intro\n\nOutro")
}

func TestExtractCmd_JSONFormatFromFile(t *testing.T) {
	t.Cleanup(func() { extractFormat = "text" })
	extractFormat = "json"

	path := filepath.Join(t.TempDir(), "reply.md")
	require.NoError(t, os.WriteFile(path, []byte("no handoff here"), 0o644))

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, runExtract(cmd, []string{path}))
	assert.Contains(t, out.String(), `"found": false`)
	assert.Contains(t, out.String(), `"text": "no handoff here"`)

	extractFormat = "yaml"
	assert.Error(t, runExtract(cmd, []string{path}))
}

func TestBuildPromptInputs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "step1.json")
	require.NoError(t, os.WriteFile(path, []byte("```json\n{\"region\":\"LATAM\",\"fixed\":{\"age\":40}}\n```"), 0o644))

	record, upstream, err := buildPromptInputs(nil, path, []string{"entropy_level=99", "room_types="})
	require.NoError(t, err)
	assert.Equal(t, settings.RegionLATAM, record.Region)
	assert.Equal(t, 40, record.Age)
	assert.Equal(t, settings.MaxEntropy, record.EntropyLevel)
	assert.Equal(t, settings.FallbackRoomTypes, record.RoomTypes)
	assert.JSONEq(t, `{"region":"LATAM","fixed":{"age":40}}`, string(upstream))

	_, _, err = buildPromptInputs(nil, "", []string{"bogus=1"})
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{nope"), 0o644))
	_, _, err = buildPromptInputs(nil, bad, nil)
	assert.ErrorIs(t, err, settings.ErrInvalidPayload)
}

func TestReadSecret(t *testing.T) {
	got, err := readSecret(strings.NewReader("  AIzaKey  \nignored\n"), &bytes.Buffer{}, "GOOGLE_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "AIzaKey", got)

	_, err = readSecret(strings.NewReader("\n"), &bytes.Buffer{}, "GOOGLE_API_KEY")
	assert.EqualError(t, err, "API key is empty")
}

func newTestApp(t *testing.T, out *bytes.Buffer, chat *mocks.ChatModelMock) *App {
	t.Helper()

	db, err := database.Init(database.Config{Path: filepath.Join(t.TempDir(), "app.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	cfg := config.Default()
	keys := services.NewKeyringService(keyring.NewArrayKeyring(nil), cfg.Keyring.CredentialName)
	keys.SetEnvLookup(func(string) (string, bool) { return "env-key", true })

	factory := func(_ context.Context, provider, apiKey string, opts client.Options) (*client.LLMClient, error) {
		return &client.LLMClient{ChatModel: chat, Provider: provider, Model: opts.Model}, nil
	}
	lister := &mocks.ModelListerMock{
		ListModelsFunc: func(context.Context) ([]client.ModelInfo, error) { return nil, errors.New("offline") },
	}

	return &App{
		ctx:  context.Background(),
		cfg:  cfg,
		keys: keys,
		out:  out,
		services: &services.DbServices{
			Sessions: services.NewChatSessionService(repositories.NewChatSessionRepository(db), keys, factory, cfg, "SYSTEM"),
			Catalog: services.NewModelCatalogService(nil, cfg.Provider, cfg.Model,
				func(context.Context, string) (client.ModelLister, error) { return lister, nil }),
		},
	}
}

func TestRunChat_Script(t *testing.T) {
	chat := &mocks.ChatModelMock{
		GenerateFunc: func(context.Context, []*schema.Message) (*schema.Message, error) {
			return schema.AssistantMessage("Concept ready\n```json\n{\"panels\":4}\n```", nil), nil
		},
	}
	var out bytes.Buffer
	app := newTestApp(t, &out, chat)

	payload := filepath.Join(t.TempDir(), "step1.json")
	require.NoError(t, os.WriteFile(payload, []byte(`{"region":"LATAM"}`), 0o644))

	script := strings.Join([]string{
		"/settings",
		"/set housing_type=LOFT entropy_level=12",
		"/json " + payload,
		"/model gemini-2.5-pro",
		"/model gpt-unknown",
		"/models",
		"warm camel tones",
		"/bogus",
		"/reset",
		"/quit",
		"never reached",
	}, "\n")

	require.NoError(t, runChat(app, strings.NewReader(script), ""))

	text := out.String()
	assert.Contains(t, text, services.Greeting)
	assert.Contains(t, text, "housing_type=APARTMENT")
	assert.Contains(t, text, "Context changed:")
	assert.Contains(t, text, "Loft")
	assert.Contains(t, text, "STEP 1 payload applied.")
	assert.Contains(t, text, "Model: gemini-2.5-pro")
	assert.Contains(t, text, "model gpt-unknown is not available")
	assert.Contains(t, text, "* gemini-2.5-pro")
	assert.Contains(t, text, "STEP 3 handoff (JSON)")
	assert.Contains(t, text, `"panels": 4`)
	assert.Contains(t, text, "Concept ready")
	assert.Contains(t, text, "unknown command /bogus")
	assert.Contains(t, text, "Conversation cleared.")

	require.Len(t, chat.Inputs, 1)
	sent := chat.Inputs[0]
	assert.Contains(t, sent[len(sent)-1].Content, "Region: LATAM")
	assert.Contains(t, sent[len(sent)-1].Content, "Housing_Type: LOFT")
	assert.Contains(t, sent[len(sent)-1].Content, "Entropy_Level: 10")
}

func TestRunChat_SetAcceptsMultiWordValues(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(t, &out, &mocks.ChatModelMock{})

	script := "/set region=LATAM city=Buenos Aires occupation=Textile Designer room_types=Kitchen, Living Room\n/settings\n/quit\n"
	require.NoError(t, runChat(app, strings.NewReader(script), ""))

	text := out.String()
	assert.NotContains(t, text, "expected field=value")
	assert.Contains(t, text, "region=LATAM city=Buenos Aires season=WINTER")
	assert.Contains(t, text, "occupation=Textile Designer")
	assert.Contains(t, text, "room_types=Kitchen,Living Room")
}

func TestRunChat_ResumeUnknownSession(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(t, &out, &mocks.ChatModelMock{})

	err := runChat(app, strings.NewReader(""), "missing")
	assert.ErrorIs(t, err, services.ErrNoSession)
}

func TestRunChat_ModelFailureIsReported(t *testing.T) {
	chat := &mocks.ChatModelMock{
		GenerateFunc: func(context.Context, []*schema.Message) (*schema.Message, error) {
			return nil, errors.New("quota exceeded")
		},
	}
	var out bytes.Buffer
	app := newTestApp(t, &out, chat)

	require.NoError(t, runChat(app, strings.NewReader("hello\n/quit\n"), ""))
	assert.Contains(t, out.String(), "! generation failed")
	assert.Contains(t, out.String(), "quota exceeded")
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, 4, int(gormLogLevel("debug")))
	assert.Equal(t, 2, int(gormLogLevel("error")))
	assert.Equal(t, 3, int(gormLogLevel("info")))
}
