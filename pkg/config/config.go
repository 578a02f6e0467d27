// Package config loads the ingestion run configuration: the target law
// set from a YAML file, with environment overrides for the portal base
// URL, reference date and output locations.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/coolbeans/slovlex/pkg/types"
)

// LawConfig is one target law entry in the configuration file.
type LawConfig struct {
	ID          string `yaml:"id" validate:"required"`
	Year        int    `yaml:"year" validate:"required,gte=1945,lte=2100"`
	Number      int    `yaml:"number" validate:"required,gte=1"`
	Title       string `yaml:"title" validate:"required"`
	ShortTitle  string `yaml:"short_title"`
	Description string `yaml:"description"`
}

// Config is the full run configuration.
type Config struct {
	// BaseURL is the portal's statute collection root.
	BaseURL string `yaml:"base_url"`

	// ReferenceDate selects which revision of each law is ingested
	// (ISO). Defaults to today in UTC.
	ReferenceDate string `yaml:"reference_date" validate:"omitempty,datetime=2006-01-02"`

	// OutputDir receives the JSON export, one file per law.
	OutputDir string `yaml:"output_dir"`

	// PostgresDSN enables database persistence when non-empty.
	PostgresDSN string `yaml:"postgres_dsn"`

	// CacheDir enables fetch caching when non-empty.
	CacheDir string `yaml:"cache_dir"`

	// HTTPAddr is the query API listen address.
	HTTPAddr string `yaml:"http_addr"`

	Laws []LawConfig `yaml:"laws" validate:"required,min=1,dive"`
}

// Environment variable overrides. Values from the environment win over
// the configuration file.
const (
	envBaseURL       = "SLOVLEX_BASE_URL"
	envReferenceDate = "SLOVLEX_REFERENCE_DATE"
	envOutputDir     = "SLOVLEX_OUTPUT_DIR"
	envPostgresDSN   = "SLOVLEX_POSTGRES_DSN"
	envCacheDir      = "SLOVLEX_CACHE_DIR"
	envHTTPAddr      = "SLOVLEX_HTTP_ADDR"
)

// Load reads the YAML configuration file, applies an optional .env file
// and environment overrides, fills defaults and validates the result.
func Load(path string) (*Config, error) {
	// A missing .env file is fine; explicit environment still applies.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(envBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(envReferenceDate); v != "" {
		cfg.ReferenceDate = v
	}
	if v := os.Getenv(envOutputDir); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv(envPostgresDSN); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv(envCacheDir); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv(envHTTPAddr); v != "" {
		cfg.HTTPAddr = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.ReferenceDate == "" {
		cfg.ReferenceDate = time.Now().UTC().Format("2006-01-02")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "export"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
}

// TargetLaws converts the configured entries to domain records.
func (c *Config) TargetLaws() []types.TargetLaw {
	laws := make([]types.TargetLaw, 0, len(c.Laws))
	for _, law := range c.Laws {
		laws = append(laws, types.TargetLaw{
			ID:          law.ID,
			Year:        law.Year,
			Number:      law.Number,
			Title:       law.Title,
			ShortTitle:  law.ShortTitle,
			Description: law.Description,
		})
	}
	return laws
}
