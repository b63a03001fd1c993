package services_test

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artdirector/internal/services"
)

func envOf(values map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := values[name]
		return v, ok
	}
}

func TestResolveAPIKey_SecretsWin(t *testing.T) {
	ring := keyring.NewArrayKeyring([]keyring.Item{{Key: "GOOGLE_API_KEY", Data: []byte("  from-secrets \n")}})
	svc := services.NewKeyringService(ring, "GOOGLE_API_KEY")
	svc.SetEnvLookup(envOf(map[string]string{"GOOGLE_API_KEY": "from-env"}))

	key, source := svc.ResolveAPIKey("from-input")
	assert.Equal(t, "from-secrets", key)
	assert.Equal(t, services.KeySourceSecrets, source)
}

func TestResolveAPIKey_InputThenEnv(t *testing.T) {
	svc := services.NewKeyringService(keyring.NewArrayKeyring(nil), "GOOGLE_API_KEY")
	svc.SetEnvLookup(envOf(map[string]string{"GOOGLE_API_KEY": " from-env "}))

	key, source := svc.ResolveAPIKey("  typed  ")
	assert.Equal(t, "typed", key)
	assert.Equal(t, services.KeySourceInput, source)

	key, source = svc.ResolveAPIKey("   ")
	assert.Equal(t, "from-env", key)
	assert.Equal(t, services.KeySourceEnv, source)
}

func TestResolveAPIKey_BlankSecretFallsThrough(t *testing.T) {
	ring := keyring.NewArrayKeyring([]keyring.Item{{Key: "GOOGLE_API_KEY", Data: []byte("   ")}})
	svc := services.NewKeyringService(ring, "GOOGLE_API_KEY")
	svc.SetEnvLookup(envOf(nil))

	key, source := svc.ResolveAPIKey("")
	assert.Equal(t, "", key)
	assert.Equal(t, services.KeySource(""), source)
}

func TestResolveAPIKey_NilRing(t *testing.T) {
	svc := services.NewKeyringService(nil, "GOOGLE_API_KEY")
	svc.SetEnvLookup(envOf(map[string]string{"GOOGLE_API_KEY": "env-key"}))

	key, source := svc.ResolveAPIKey("")
	assert.Equal(t, "env-key", key)
	assert.Equal(t, services.KeySourceEnv, source)
}

func TestKeyringService_StoreGetDeleteList(t *testing.T) {
	svc := services.NewKeyringService(keyring.NewArrayKeyring(nil), "GOOGLE_API_KEY")

	assert.EqualError(t, svc.StoreAPIKey("GOOGLE_API_KEY", nil), "API key is empty")
	assert.EqualError(t, svc.StoreAPIKey("", []byte("k")), "credential name is required")

	require.NoError(t, svc.StoreAPIKey("GOOGLE_API_KEY", []byte("AIzaSyExampleKey1234")))
	got, err := svc.GetAPIKey("GOOGLE_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "AIzaSyExampleKey1234", got)

	list, err := svc.ListAPIKeys()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "GOOGLE_API_KEY", list[0]["name"])
	assert.Equal(t, "AIza...1234", list[0]["masked"])

	require.NoError(t, svc.DeleteAPIKey("GOOGLE_API_KEY"))
	_, err = svc.GetAPIKey("GOOGLE_API_KEY")
	assert.ErrorIs(t, err, keyring.ErrKeyNotFound)
}
