package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Cache   CacheConfig   `yaml:"cache"`
	Storage StorageConfig `yaml:"storage"`
	UI      UIConfig      `yaml:"ui"`
	Links   LinksConfig   `yaml:"links"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	IGDB    IGDBConfig    `yaml:"igdb"`
}

// APIConfig describes the upstream game-metadata API.
type APIConfig struct {
	BaseURL           string        `yaml:"base_url" env:"BIBLIOTECA_API_BASE_URL"`
	Key               string        `yaml:"key" env:"RAWG_API_KEY"`
	PageSize          int           `yaml:"page_size" env:"BIBLIOTECA_PAGE_SIZE"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"BIBLIOTECA_API_RPS"`
	Timeout           time.Duration `yaml:"timeout" env:"BIBLIOTECA_API_TIMEOUT"`
}

// CacheConfig controls the response cache.
type CacheConfig struct {
	TTL time.Duration `yaml:"ttl" env:"BIBLIOTECA_CACHE_TTL"`
}

// StorageConfig locates the persistent key-value store.
type StorageConfig struct {
	Path      string `yaml:"path" env:"BIBLIOTECA_DB"`
	Driver    string `yaml:"driver" env:"BIBLIOTECA_DB_DRIVER"`
	Namespace string `yaml:"namespace" env:"BIBLIOTECA_NAMESPACE"`
}

// UIConfig holds presentation timings and curated content.
type UIConfig struct {
	SearchDebounce   time.Duration `yaml:"search_debounce"`
	CarouselInterval time.Duration `yaml:"carousel_interval"`
	CarouselSize     int           `yaml:"carousel_size"`
	NewReleaseWindow time.Duration `yaml:"new_release_window"`
	GenreRows        []string      `yaml:"genre_rows"`
	Filters          []string      `yaml:"filters"`
}

// LinksConfig holds the static external navigation targets.
type LinksConfig struct {
	PurchaseURL   string `yaml:"purchase_url"`
	NewsletterURL string `yaml:"newsletter_url"`
	ContactEmail  string `yaml:"contact_email"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Format string `yaml:"format" env:"BIBLIOTECA_LOG_FORMAT"`
	Level  string `yaml:"level" env:"BIBLIOTECA_LOG_LEVEL"`
	File   string `yaml:"file" env:"BIBLIOTECA_LOG_FILE"`
}

// MetricsConfig controls the Prometheus listener.
type MetricsConfig struct {
	Addr string `yaml:"addr" env:"BIBLIOTECA_METRICS_ADDR"`
}

// IGDBConfig holds optional IGDB credentials.
type IGDBConfig struct {
	ClientID     string `yaml:"client_id" env:"IGDB_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"IGDB_CLIENT_SECRET"`
}

// Enabled reports whether IGDB enrichment is configured.
func (c IGDBConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

var defaultGenreRows = []string{"action", "indie", "role-playing-games-rpg", "strategy"}

var defaultFilters = []string{"", "action", "adventure", "role-playing-games-rpg", "indie", "shooter", "strategy", "puzzle"}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           "https://api.rawg.io/api",
			PageSize:          20,
			RequestsPerSecond: 4,
			Timeout:           10 * time.Second,
		},
		Cache: CacheConfig{TTL: 30 * time.Minute},
		Storage: StorageConfig{
			Path:      "biblioteca.db",
			Driver:    "sqlite",
			Namespace: "biblioteca",
		},
		UI: UIConfig{
			SearchDebounce:   350 * time.Millisecond,
			CarouselInterval: 6 * time.Second,
			CarouselSize:     5,
			NewReleaseWindow: 90 * 24 * time.Hour,
			GenreRows:        append([]string(nil), defaultGenreRows...),
			Filters:          append([]string(nil), defaultFilters...),
		},
		Links: LinksConfig{
			PurchaseURL:   "https://www.instant-gaming.com/?igr=bibliotecagamer",
			NewsletterURL: "https://bibliotecagamer.substack.com/subscribe",
			ContactEmail:  "tu@email.com",
		},
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

// ErrMissingAPIKey is returned by Validate when no API key is configured.
var ErrMissingAPIKey = errors.New("api key is required (set RAWG_API_KEY or api.key)")

// configPaths returns the list of paths to search for config file.
func configPaths() []string {
	paths := []string{
		".biblioteca.yaml",
		".biblioteca.yml",
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "biblioteca", "config.yaml"),
			filepath.Join(home, ".config", "biblioteca", "config.yml"),
			filepath.Join(home, ".biblioteca.yaml"),
		)
	}

	return paths
}

// Load loads configuration from file or returns defaults.
// Priority: env vars > env BIBLIOTECA_CONFIG file > search paths > defaults.
// A .env file in the working directory is loaded into the environment first.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := DefaultConfig()

	if envPath := os.Getenv("BIBLIOTECA_CONFIG"); envPath != "" {
		if err := cfg.loadFromFile(envPath); err != nil {
			return nil, err
		}
	} else {
		for _, path := range configPaths() {
			if _, err := os.Stat(path); err == nil {
				if err := cfg.loadFromFile(path); err != nil {
					return nil, err
				}
				break
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // Path from user config
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the fields the API client cannot work without.
func (c *Config) Validate() error {
	if c.API.Key == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// GetDBPath returns the database path, applying defaults.
func (c *Config) GetDBPath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return "biblioteca.db"
}

// GetPageSize returns the catalog page size.
func (c *Config) GetPageSize() int {
	if c.API.PageSize > 0 {
		return c.API.PageSize
	}
	return 20
}

// GetCacheTTL returns the response cache time-to-live.
func (c *Config) GetCacheTTL() time.Duration {
	if c.Cache.TTL > 0 {
		return c.Cache.TTL
	}
	return 30 * time.Minute
}

// GetGenreRows returns the genres rendered as home page rows.
func (c *Config) GetGenreRows() []string {
	if len(c.UI.GenreRows) > 0 {
		return c.UI.GenreRows
	}
	return defaultGenreRows
}

// GetFilters returns the genre filter buttons; "" means all genres.
func (c *Config) GetFilters() []string {
	if len(c.UI.Filters) == 0 {
		return defaultFilters
	}
	if c.UI.Filters[0] != "" {
		return append([]string{""}, c.UI.Filters...)
	}
	return c.UI.Filters
}
