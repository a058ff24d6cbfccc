package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultAddr         = "8080"
	DefaultModel        = "gpt-4-turbo-preview"
	DefaultRetrieverBin = "rag-retriever"
)

// Config is resolved once at startup from flags, the environment and an
// optional .env file. Flag names double as keys: "openai-api-key" is read
// from OPENAI_API_KEY.
type Config struct {
	Addr     string
	LogLevel string
	LogJSON  bool

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	RetrieverBin string

	// DryRun answers with the echo engine; no API key is needed.
	DryRun bool
}

// LoadEnvFile loads key=value pairs from path into the process environment.
// A missing file is not an error; variables already set win.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load resolves the configuration. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-json", false)
	v.SetDefault("openai-model", DefaultModel)
	v.SetDefault("openai-base-url", "")
	v.SetDefault("rag-retriever-bin", DefaultRetrieverBin)
	v.SetDefault("dry-run", false)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	cfg := &Config{
		Addr:          strings.TrimSpace(v.GetString("addr")),
		LogLevel:      strings.ToLower(strings.TrimSpace(v.GetString("log-level"))),
		LogJSON:       v.GetBool("log-json"),
		OpenAIAPIKey:  strings.TrimSpace(v.GetString("openai-api-key")),
		OpenAIModel:   strings.TrimSpace(v.GetString("openai-model")),
		OpenAIBaseURL: strings.TrimSpace(v.GetString("openai-base-url")),
		RetrieverBin:  strings.TrimSpace(v.GetString("rag-retriever-bin")),
		DryRun:        v.GetBool("dry-run"),
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = DefaultModel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work. The API key is checked by the
// completion client itself so dry runs can start without one.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug|info|warn|error, got %q", c.LogLevel)
	}
	if c.RetrieverBin == "" {
		return errors.New("RAG_RETRIEVER_BIN must not be empty")
	}
	if c.Addr == "" {
		return errors.New("ADDR must not be empty")
	}
	return nil
}
