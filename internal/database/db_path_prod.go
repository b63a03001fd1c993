//go:build prod

package database

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// GetDefaultDBPath returns the database path for production mode.
// In production, the database is stored in the user's config directory.
func GetDefaultDBPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Warn().Err(err).Msg("user config dir unavailable, using working directory")
		return "artdirector.db"
	}

	appDir := filepath.Join(configDir, "artdirector")
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		log.Warn().Err(err).Str("dir", appDir).Msg("cannot create app config dir, using working directory")
		return "artdirector.db"
	}

	return filepath.Join(appDir, "artdirector.db")
}

func IsDevelopment() bool {
	return false
}
