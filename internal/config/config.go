package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/crimson-sun/practicematch/internal/source"
)

// envPrefix is prepended to every environment variable name.
const envPrefix = "PRACTICEMATCH_"

// Config holds all practicematch configuration.
type Config struct {
	LogLevel string       `yaml:"log_level"`
	Engine   EngineConfig `yaml:"engine"`
	Source   SourceConfig `yaml:"source"`
	Output   OutputConfig `yaml:"output"`
	Server   ServerConfig `yaml:"server"`
}

// EngineConfig holds matcher settings.
type EngineConfig struct {
	Threshold int `yaml:"threshold"`
}

// SourceConfig selects and configures the profile source.
type SourceConfig struct {
	Provider    string            `yaml:"provider"`
	Path        string            `yaml:"path"`
	Endpoint    string            `yaml:"endpoint"`
	APIKey      string            `yaml:"api_key"`
	DatabaseURL string            `yaml:"database_url"`
	Extra       map[string]string `yaml:"extra"`
}

// OutputConfig holds output destination settings.
type OutputConfig struct {
	Kind      string `yaml:"kind"` // "stdout", "file" or "both"
	Path      string `yaml:"path"`
	Pretty    bool   `yaml:"pretty"`
	Verbosity string `yaml:"verbosity"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Engine:   EngineConfig{Threshold: 10},
		Source:   SourceConfig{Provider: "file", Path: "attorneys.json"},
		Output:   OutputConfig{Kind: "stdout", Path: "selections.jsonl", Verbosity: "standard"},
		Server:   ServerConfig{Addr: ":8080"},
	}
}

// Load returns the defaults, overlaid by the YAML file at path (or at
// $PRACTICEMATCH_CONFIG when path is empty), overlaid by environment
// variables. A missing explicit file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	cfg.Engine.Threshold = getenvInt("THRESHOLD", cfg.Engine.Threshold)

	cfg.Source.Provider = getenv("SOURCE", cfg.Source.Provider)
	cfg.Source.Path = getenv("SOURCE_PATH", cfg.Source.Path)
	cfg.Source.Endpoint = getenv("ENDPOINT", cfg.Source.Endpoint)
	cfg.Source.APIKey = getenv("API_KEY", cfg.Source.APIKey)
	cfg.Source.DatabaseURL = getenv("DATABASE_URL", cfg.Source.DatabaseURL)
	cfg.Source.Extra = loadSourceExtra(cfg.Source.Extra)

	cfg.Output.Kind = getenv("OUTPUT", cfg.Output.Kind)
	cfg.Output.Path = getenv("OUTPUT_PATH", cfg.Output.Path)
	cfg.Output.Pretty = getenvBool("PRETTY", cfg.Output.Pretty)
	cfg.Output.Verbosity = getenv("VERBOSITY", cfg.Output.Verbosity)

	cfg.Server.Addr = getenv("ADDR", cfg.Server.Addr)
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	var errs []error
	if c.Engine.Threshold < 0 {
		errs = append(errs, fmt.Errorf("threshold must not be negative, got %d", c.Engine.Threshold))
	}
	switch c.Output.Kind {
	case "stdout":
	case "file", "both":
		if c.Output.Path == "" {
			errs = append(errs, fmt.Errorf("output %q requires a path", c.Output.Kind))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown output %q", c.Output.Kind))
	}
	switch strings.ToLower(c.Output.Verbosity) {
	case "", "standard", "minimal":
	default:
		errs = append(errs, fmt.Errorf("unknown verbosity %q", c.Output.Verbosity))
	}
	return errors.Join(errs...)
}

// SourceConfig converts the source section into the form sources accept.
func (c Config) SourceConfig() source.Config {
	return source.Config{
		Provider:    c.Source.Provider,
		Path:        c.Source.Path,
		Endpoint:    c.Source.Endpoint,
		APIKey:      c.Source.APIKey,
		DatabaseURL: c.Source.DatabaseURL,
		Extra:       c.Source.Extra,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(envPrefix + key); v != "" {
		return v
	}
	return fallback
}

// loadSourceExtra overlays provider-specific env vars onto extra.
func loadSourceExtra(extra map[string]string) map[string]string {
	vars := []struct {
		envVar   string
		extraKey string
	}{
		{"PAYLOAD_COLLECTION", "collection"},
		{"PAYLOAD_AUTH_COLLECTION", "auth_collection"},
		{"PAYLOAD_PAGE_SIZE", "page_size"},
		{"SLUGS", "slugs"},
	}
	for _, v := range vars {
		if val := os.Getenv(envPrefix + v.envVar); val != "" {
			if extra == nil {
				extra = make(map[string]string)
			}
			extra[v.extraKey] = val
		}
	}
	return extra
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
