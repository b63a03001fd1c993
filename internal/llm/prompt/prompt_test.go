package prompt

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"artdirector/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_WithoutUpstream(t *testing.T) {
	got := Compose(settings.Defaults(), nil, "warm autumn light")

	want := strings.Join([]string{
		"[STEP2_SYSTEM_OVERRIDE_DATA]",
		"Project_ID: LG_AD_2026_STEP2_01",
		"",
		"[STEP1_INHERITED_DATA]",
		"Region: EU",
		"City: Paris",
		"Season: WINTER",
		"Model_Age: 35",
		"Occupation: Gallery Curator",
		"Fashion_Color: #C19A6B",
		"Fashion_Color_Name: Camel",
		"Aspect_Ratio: 4:5",
		"",
		"[STEP2_SETTINGS]",
		"Housing_Type: APARTMENT",
		"Interior_Style: PARIS_STYLE",
		"Room_Types: Kitchen, Living, Bedroom, Laundry",
		"Entropy_Level: 5",
		"Output_Preset: BASIC",
		"",
		"[USER_CREATIVE_DIRECTION]",
		"warm autumn light",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestCompose_EchoesUpstreamBlock(t *testing.T) {
	upstream := json.RawMessage(`{"region":"LATAM","city":"São Paulo","fixed":{"age":40}}`)

	got := Compose(settings.Defaults(), upstream, "")

	assert.Contains(t, got, "[STEP1_JSON_BLOCK]\n```json\n{\n  \"region\": \"LATAM\",\n  \"city\": \"São Paulo\",")
	assert.Contains(t, got, "\n```\n\n[STEP2_SETTINGS]")
	assert.True(t, strings.HasSuffix(got, "[USER_CREATIVE_DIRECTION]"))
}

func TestCompose_EmptyUpstreamIsNotEchoed(t *testing.T) {
	for _, raw := range []string{`{}`, `[]`, `null`, ``} {
		got := Compose(settings.Defaults(), json.RawMessage(raw), "x")
		assert.NotContains(t, got, "[STEP1_JSON_BLOCK]", "payload %q", raw)
	}
}

func TestEmbeddedLoader_JoinsFilesInOrder(t *testing.T) {
	text := NewEmbeddedLoader().Load()

	assert.NotContains(t, text, "<!--")
	sections := strings.Split(text, sectionSeparator)
	require.Len(t, sections, len(DefaultFiles))
	assert.True(t, strings.HasPrefix(sections[0], "# ROLE"))
	assert.True(t, strings.HasPrefix(sections[2], "# OUTPUT"))
}

func TestDirLoader_UsesIndexOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "alpha <!-- hidden\nmulti-line -->")
	writeFile(t, dir, "b.md", "<!-- only a comment -->")
	writeFile(t, dir, "c.md", "  gamma  \n")
	writeFile(t, dir, IndexFile, "# load order\nc.md\nmissing.md\nb.md\na.md\n")

	loader, err := NewDirLoader(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"c.md", "missing.md", "b.md", "a.md"}, loader.Files())
	assert.Equal(t, "gamma"+sectionSeparator+"alpha", loader.Load())
}

func TestDirLoader_GlobsMarkdownWithoutIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	writeFile(t, dir, "20_out.md", "out")
	writeFile(t, dir, "00_core.md", "core")
	writeFile(t, filepath.Join(dir, "nested"), "10_mid.md", "mid")
	writeFile(t, dir, "notes.txt", "ignored")

	loader, err := NewDirLoader(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"00_core.md", "20_out.md", "nested/10_mid.md"}, loader.Files())
	assert.Equal(t, "core"+sectionSeparator+"out"+sectionSeparator+"mid", loader.Load())
}

func TestDirLoader_PlaceholderWhenNothingLoads(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, IndexFile, "gone.md\n")

	loader, err := NewDirLoader(dir)
	require.NoError(t, err)

	assert.Equal(t, "Art Director System STEP 2 v5.9.0 - Prompt files not found", loader.Load())
}

func TestDirLoader_MissingDirectory(t *testing.T) {
	_, err := NewDirLoader(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)

	_, err = NewDirLoader("  ")
	assert.EqualError(t, err, "prompt directory is required")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
