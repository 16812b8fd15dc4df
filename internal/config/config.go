package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort = 2330
	defaultEnv  = "development"
)

// AppConfig holds runtime configuration loaded from YAML.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	RedisURL       string         `yaml:"redis_url"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	Storage        StorageOptions `yaml:"storage"`
	Mail           MailOptions    `yaml:"mail"`
	AI             AIConfig       `yaml:"ai"`
	Pipeline       PipelineConfig `yaml:"pipeline"`
}

// StorageOptions configures the object store holding the source workbook.
type StorageOptions struct {
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	Key             string `yaml:"key"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PathStyleAccess bool   `yaml:"path_style_access"`
}

// MailOptions configures the digest delivery channel.
type MailOptions struct {
	Backend         string      `yaml:"backend"` // "ses" | "smtp"
	Region          string      `yaml:"region"`
	AccessKeyID     string      `yaml:"access_key_id"`
	SecretAccessKey string      `yaml:"secret_access_key"`
	Endpoint        string      `yaml:"endpoint"`
	From            string      `yaml:"from"`
	To              string      `yaml:"to"`
	Subject         string      `yaml:"subject"`
	SMTP            SMTPOptions `yaml:"smtp"`
}

// SMTPOptions is the alternative SMTP backend.
type SMTPOptions struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
}

// AIConfig holds the inference provider catalogue.
type AIConfig struct {
	Providers   []AIProvider       `yaml:"providers"`
	DigestModel *AIModelAssignment `yaml:"digest_model,omitempty"`
}

// AIProvider describes one inference endpoint.
type AIProvider struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"` // OpenAI | OpenAI-Compatible | Anthropic
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint,omitempty"`
	DefaultModel string `yaml:"default_model"`
	Enabled      bool   `yaml:"enabled"`
}

// AIModelAssignment pins the digest work to a provider and model.
type AIModelAssignment struct {
	ProviderID string `yaml:"provider_id"`
	Model      string `yaml:"model"`
}

// PipelineConfig tunes chunking, sampling, and hardening knobs.
type PipelineConfig struct {
	ChunkRows        int     `yaml:"chunk_rows"`
	MaxChunkChars    int     `yaml:"max_chunk_chars"`
	MaxOutputTokens  int     `yaml:"max_output_tokens"`
	Temperature      float64 `yaml:"temperature"`
	TopP             float64 `yaml:"top_p"`
	ModelAttempts    int     `yaml:"model_attempts"`
	ModelRetryBaseMS int     `yaml:"model_retry_base_ms"`
	RequestTimeoutS  int     `yaml:"request_timeout_seconds"`
}

// Load reads, parses, and normalizes the YAML config at path.
// A missing file is not an error: defaults plus environment overrides apply,
// so a fully env-driven deployment needs no config file at all.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development")
}
