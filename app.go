package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"artdirector/internal/config"
	"artdirector/internal/database"
	"artdirector/internal/events"
	"artdirector/internal/llm/prompt"
	"artdirector/internal/logging"
	"artdirector/internal/services"
	"artdirector/internal/utils"
)

// App struct
type App struct {
	ctx      context.Context
	cfg      *config.Config
	db       *gorm.DB
	keys     *services.KeyringService
	services *services.DbServices
	system   string
	out      io.Writer
	dbClose  func() error
}

// NewApp creates a new App application struct
func NewApp(out io.Writer) *App {
	if out == nil {
		out = os.Stdout
	}
	return &App{out: out}
}

// configure loads config, logging and the environment. It is enough for the
// commands that never touch storage or credentials.
func (a *App) configure(ctx context.Context) error {
	a.ctx = ctx

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if strings.TrimSpace(logLevel) != "" {
		cfg.LogLevel = logLevel
	}
	a.cfg = cfg

	logging.Setup(cfg.LogLevel, os.Stderr)
	if err := utils.LoadEnv(); err != nil {
		log.Warn().Err(err).Msg("could not load .env")
	}
	return nil
}

// startup is the full wiring: secret store, system instruction, database and
// services.
func (a *App) startup(ctx context.Context) error {
	if err := a.configure(ctx); err != nil {
		return err
	}

	a.openKeys()

	system, err := a.loadSystemInstruction()
	if err != nil {
		return err
	}
	a.system = system

	db, err := database.Init(database.Config{
		Path:     a.cfg.DBPath,
		LogLevel: gormLogLevel(a.cfg.LogLevel),
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	a.db = db
	a.dbClose = func() error { return database.Close(db) }

	events.EnableLogEmitter()
	a.services = services.NewDbServices(db, a.keys, a.cfg, a.system)
	if err := a.services.Sessions.Startup(ctx); err != nil {
		return err
	}

	log.Debug().
		Str("provider", a.cfg.Provider).
		Str("model", a.cfg.Model).
		Bool("dev", database.IsDevelopment()).
		Msg("app started")
	return nil
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown() {
	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		} else {
			log.Debug().Msg("database closed")
		}
		a.dbClose = nil
	}
}

// openKeys opens the secret store. Without one, credentials still resolve
// from --api-key and the environment.
func (a *App) openKeys() {
	ring, err := services.OpenKeyring(a.cfg.Keyring.Service)
	if err != nil {
		log.Warn().Err(err).Msg("secret store unavailable, using --api-key and environment only")
		ring = nil
	}
	a.keys = services.NewKeyringService(ring, a.cfg.Keyring.CredentialName)
}

func (a *App) loadSystemInstruction() (string, error) {
	loader := prompt.NewEmbeddedLoader()
	if dir := strings.TrimSpace(a.cfg.PromptsDir); dir != "" {
		l, err := prompt.NewDirLoader(dir)
		if err != nil {
			return "", fmt.Errorf("prompts dir: %w", err)
		}
		loader = l
	}
	return loader.Load(), nil
}

// apiKey resolves the credential for this run from the --api-key flag and the
// configured sources.
func (a *App) apiKey() (string, services.KeySource) {
	return a.keys.ResolveAPIKey(apiKeyFlag)
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug", "trace":
		return logger.Info
	case "error":
		return logger.Error
	default:
		return logger.Warn
	}
}
