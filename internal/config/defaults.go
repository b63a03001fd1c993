// Package config - defaults.go centralizes default values.
package config

// =============================================================================
// PROVIDERS
// =============================================================================

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
)

// DefaultProvider is the chat backend used when none is configured.
const DefaultProvider = ProviderGemini

// DefaultModel is the first entry of the built-in Gemini model list.
const DefaultModel = "gemini-2.0-flash"

// DefaultCredentialName is the keyring item and environment variable holding
// the API key for each provider.
var DefaultCredentialName = map[string]string{
	ProviderGemini: "GOOGLE_API_KEY",
	ProviderOpenAI: "OPENAI_API_KEY",
	ProviderClaude: "ANTHROPIC_API_KEY",
}

// =============================================================================
// GENERATION
// =============================================================================

const (
	DefaultTemperature     float32 = 0.7
	DefaultTopP            float32 = 0.95
	DefaultTopK            int32   = 40
	DefaultMaxOutputTokens         = 8192
)

// =============================================================================
// STORAGE AND SECRETS
// =============================================================================

// DefaultKeyringService namespaces stored API keys.
const DefaultKeyringService = "artdirector"

// DefaultConfigFile is read from the working directory when --config is unset.
const DefaultConfigFile = "artdirector.yaml"

// DefaultLogLevel applies when the configured level does not parse.
const DefaultLogLevel = "info"
