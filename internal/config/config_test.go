package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://api.rawg.io/api", cfg.API.BaseURL)
	assert.Equal(t, 20, cfg.API.PageSize)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "biblioteca.db", cfg.Storage.Path)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, 350*time.Millisecond, cfg.UI.SearchDebounce)
	assert.Equal(t, 90*24*time.Hour, cfg.UI.NewReleaseWindow)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.IGDB.Enabled())
}

func TestConfig_GetDBPath(t *testing.T) {
	tests := []struct {
		name     string
		dbPath   string
		expected string
	}{
		{"returns configured path", "custom.db", "custom.db"},
		{"returns default when empty", "", "biblioteca.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Storage: StorageConfig{Path: tt.dbPath}}
			assert.Equal(t, tt.expected, cfg.GetDBPath())
		})
	}
}

func TestConfig_GetFilters(t *testing.T) {
	tests := []struct {
		name     string
		filters  []string
		expected []string
	}{
		{"default starts with all", nil, defaultFilters},
		{"prepends all when missing", []string{"indie", "action"}, []string{"", "indie", "action"}},
		{"keeps explicit all", []string{"", "puzzle"}, []string{"", "puzzle"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{UI: UIConfig{Filters: tt.filters}}
			assert.Equal(t, tt.expected, cfg.GetFilters())
		})
	}
}

func TestConfig_Getters_Defaults(t *testing.T) {
	cfg := &Config{}

	assert.Equal(t, 20, cfg.GetPageSize())
	assert.Equal(t, 30*time.Minute, cfg.GetCacheTTL())
	assert.Equal(t, defaultGenreRows, cfg.GetGenreRows())
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)

	cfg.API.Key = "abc"
	assert.NoError(t, cfg.Validate())
}

// clearEnv unsets keys for the duration of the test.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_FromEnvPath(t *testing.T) {
	chdir(t, t.TempDir())
	clearEnv(t, "RAWG_API_KEY", "BIBLIOTECA_PAGE_SIZE", "BIBLIOTECA_CACHE_TTL", "BIBLIOTECA_DB", "BIBLIOTECA_API_BASE_URL")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api:
  key: file-key
  page_size: 40
cache:
  ttl: 10m
storage:
  path: /tmp/games.db
ui:
  genre_rows: [puzzle]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("BIBLIOTECA_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.API.Key)
	assert.Equal(t, 40, cfg.API.PageSize)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "/tmp/games.db", cfg.Storage.Path)
	assert.Equal(t, []string{"puzzle"}, cfg.GetGenreRows())
	// Defaults survive for unset keys
	assert.Equal(t, "https://api.rawg.io/api", cfg.API.BaseURL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	chdir(t, t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  key: file-key\n"), 0644))
	t.Setenv("BIBLIOTECA_CONFIG", path)
	t.Setenv("RAWG_API_KEY", "env-key")
	t.Setenv("BIBLIOTECA_DB", "env.db")
	t.Setenv("BIBLIOTECA_CACHE_TTL", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.API.Key)
	assert.Equal(t, "env.db", cfg.GetDBPath())
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	clearEnv(t, "BIBLIOTECA_CONFIG", "RAWG_API_KEY")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RAWG_API_KEY=dotenv-key\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.API.Key)
}

func TestLoad_InvalidEnv(t *testing.T) {
	chdir(t, t.TempDir())
	clearEnv(t, "BIBLIOTECA_CONFIG")
	t.Setenv("BIBLIOTECA_PAGE_SIZE", "not-an-int")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("BIBLIOTECA_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
