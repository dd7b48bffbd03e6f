package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("SERVER_URL", "http://localhost:5000")

	cfg := FromEnv()

	assert.Equal(t, "http://localhost:5000", cfg.ServerURL)
	assert.Equal(t, ".", cfg.VaultPath)
	assert.Equal(t, "English/Vocabulary", cfg.VocabularyFolder)
	assert.Equal(t, "English/stories", cfg.StoriesFolder)
	assert.Equal(t, 10, cfg.StoryWordCount)
	assert.Equal(t, 30, cfg.ShortSelectionLimit)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.IsProduction())
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("SERVER_URL", "https://vocab.example.com")
	t.Setenv("STORY_WORD_COUNT", "5")
	t.Setenv("HTTP_TIMEOUT", "2s")
	t.Setenv("GO_ENV", "production")
	t.Setenv("SHORT_SELECTION_LIMIT", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, 5, cfg.StoryWordCount)
	assert.Equal(t, 2*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 30, cfg.ShortSelectionLimit, "bad values fall back to the default")
	assert.True(t, cfg.IsProduction())
}

func TestLoad_RequiresServerURL(t *testing.T) {
	t.Setenv("SERVER_URL", "")

	_, err := Load("")
	assert.ErrorContains(t, err, "ServerURL")
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("SERVER_URL", "http://localhost:5000")
	t.Setenv("GO_ENV", "staging")

	_, err := Load("")
	assert.ErrorContains(t, err, "Environment")
}

func TestLoad_YAMLOverridesEnv(t *testing.T) {
	t.Setenv("SERVER_URL", "http://localhost:5000")
	t.Setenv("STORY_WORD_COUNT", "4")

	path := filepath.Join(t.TempDir(), "wordlookup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server_url: http://vocab.internal:8000
vault_path: /notes
story_word_count: 7
http_timeout: 45s
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://vocab.internal:8000", cfg.ServerURL)
	assert.Equal(t, "/notes", cfg.VaultPath)
	assert.Equal(t, 7, cfg.StoryWordCount)
	assert.Equal(t, 45*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "English/Vocabulary", cfg.VocabularyFolder, "unset keys keep env values")
}

func TestLoad_MissingYAML(t *testing.T) {
	t.Setenv("SERVER_URL", "http://localhost:5000")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config file")
}

func TestHistoryPath(t *testing.T) {
	cfg := &Config{VaultPath: "/notes", HistoryDB: ".wordlookup/history.db"}
	assert.Equal(t, filepath.Join("/notes", ".wordlookup/history.db"), cfg.HistoryPath())

	cfg.HistoryDB = "/var/lib/history.db"
	assert.Equal(t, "/var/lib/history.db", cfg.HistoryPath())

	cfg.HistoryDB = ""
	assert.Equal(t, "", cfg.HistoryPath())
}
