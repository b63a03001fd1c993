package services

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/99designs/keyring"
	"github.com/rs/zerolog/log"

	"artdirector/internal/utils"
)

// KeySource names the credential source that supplied an API key.
type KeySource string

const (
	KeySourceSecrets KeySource = "secrets"
	KeySourceInput   KeySource = "input"
	KeySourceEnv     KeySource = "env"
)

func GetOS() string {
	return runtime.GOOS
}

// OpenKeyring opens the platform secret store for service. The encrypted file
// backend, used where no native store exists, prompts for its password.
func OpenKeyring(service string) (keyring.Keyring, error) {
	cfg := keyring.Config{
		ServiceName:              service,
		KeychainTrustApplication: true,
		FilePasswordFunc:         keyring.TerminalPrompt,
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		cfg.FileDir = filepath.Join(configDir, service, "keys")
	}
	return keyring.Open(cfg)
}

type KeyringService struct {
	ring           keyring.Keyring
	credentialName string
	lookupEnv      func(string) (string, bool)
}

// NewKeyringService wraps ring. A nil ring disables the secrets source.
func NewKeyringService(ring keyring.Keyring, credentialName string) *KeyringService {
	return &KeyringService{
		ring:           ring,
		credentialName: credentialName,
		lookupEnv:      os.LookupEnv,
	}
}

// SetEnvLookup replaces the environment reader.
func (s *KeyringService) SetEnvLookup(f func(string) (string, bool)) {
	if f == nil {
		f = os.LookupEnv
	}
	s.lookupEnv = f
}

func (s *KeyringService) CredentialName() string {
	return s.credentialName
}

func (s *KeyringService) StoreAPIKey(name string, apiKey []byte) error {
	if len(apiKey) == 0 {
		return errors.New("API key is empty")
	}
	if name == "" {
		return errors.New("credential name is required")
	}
	if s.ring == nil {
		return errors.New("secret store is unavailable")
	}
	return s.ring.Set(keyring.Item{
		Key:         name,
		Data:        apiKey,
		Label:       name + " API key",
		Description: "API key for " + name + " used by artdirector",
	})
}

func (s *KeyringService) GetAPIKey(name string) (string, error) {
	if name == "" {
		return "", errors.New("credential name is required")
	}
	if s.ring == nil {
		return "", errors.New("secret store is unavailable")
	}
	item, err := s.ring.Get(name)
	if err != nil {
		return "", err
	}
	return string(item.Data), nil
}

func (s *KeyringService) DeleteAPIKey(name string) error {
	if name == "" {
		return errors.New("credential name is required")
	}
	if s.ring == nil {
		return errors.New("secret store is unavailable")
	}
	return s.ring.Remove(name)
}

func (s *KeyringService) ListAPIKeys() ([]map[string]string, error) {
	if s.ring == nil {
		return nil, nil
	}
	names, err := s.ring.Keys()
	if err != nil {
		return nil, err
	}

	var results []map[string]string
	for _, name := range names {
		item, err := s.ring.Get(name)
		if err != nil {
			continue
		}
		results = append(results, map[string]string{
			"name":   name,
			"label":  item.Label,
			"masked": utils.MaskKey(string(item.Data)),
		})
	}
	return results, nil
}

// ResolveAPIKey returns the first non-empty trimmed key from the secret store,
// then userInput, then the environment, with the source that supplied it.
// Nothing found yields ("", "").
func (s *KeyringService) ResolveAPIKey(userInput string) (string, KeySource) {
	if s.ring != nil && s.credentialName != "" {
		item, err := s.ring.Get(s.credentialName)
		switch {
		case err == nil:
			if key := strings.TrimSpace(string(item.Data)); key != "" {
				return key, KeySourceSecrets
			}
		case !errors.Is(err, keyring.ErrKeyNotFound):
			log.Debug().Err(err).Str("credential", s.credentialName).Msg("secret store lookup failed")
		}
	}

	if key := strings.TrimSpace(userInput); key != "" {
		return key, KeySourceInput
	}

	if s.credentialName != "" && s.lookupEnv != nil {
		if v, ok := s.lookupEnv(s.credentialName); ok {
			if key := strings.TrimSpace(v); key != "" {
				return key, KeySourceEnv
			}
		}
	}
	return "", ""
}
