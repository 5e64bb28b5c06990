package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is read from the working directory when no path is given
	DefaultConfigFile = "taskflow.yaml"

	AuthModeMock = "mock"
	AuthModeHTTP = "http"
)

// Config holds all configuration for the application
type Config struct {
	// Backend stub configuration
	Server ServerConfig `yaml:"server"`

	// Logging Configuration
	Logging LoggingConfig `yaml:"logging"`

	// Frontend (CLI) configuration
	Client ClientConfig `yaml:"client"`

	// Local persisted storage for the auth token
	Storage StorageConfig `yaml:"storage"`
}

// ServerConfig holds HTTP listener configuration
type ServerConfig struct {
	Port         string   `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json, console
}

// ClientConfig holds configuration for the frontend application
type ClientConfig struct {
	APIURL        string        `yaml:"api_url"`
	AuthMode      string        `yaml:"auth_mode"` // mock, http
	MutationDelay time.Duration `yaml:"mutation_delay"`
	LogoutDelay   time.Duration `yaml:"logout_delay"`
	TokenSecret   string        `yaml:"token_secret"`
}

// StorageConfig holds the persisted storage backend selection
type StorageConfig struct {
	Backend string `yaml:"backend"` // keyring, sqlite, memory
	Path    string `yaml:"path"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8000",
			AllowOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Client: ClientConfig{
			APIURL:        "http://localhost:8000",
			AuthMode:      AuthModeMock,
			MutationDelay: time.Second,
			LogoutDelay:   500 * time.Millisecond,
		},
		Storage: StorageConfig{
			Backend: "keyring",
			Path:    "taskflow.sqlite",
		},
	}
}

// Load loads configuration from .env files, the optional YAML file and
// environment variables, in increasing order of precedence
func Load() (*Config, error) {
	return LoadFile(os.Getenv("TASKFLOW_CONFIG"))
}

// LoadFile is Load with an explicit YAML path. An empty path falls back to
// DefaultConfigFile, which may be absent.
func LoadFile(path string) (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if err := cfg.mergeFile(path, explicit); err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.Server.AllowOrigins = splitList(origins)
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}

	if apiURL := os.Getenv("TASKFLOW_API_URL"); apiURL != "" {
		c.Client.APIURL = apiURL
	}
	if mode := os.Getenv("TASKFLOW_AUTH_MODE"); mode != "" {
		c.Client.AuthMode = strings.ToLower(mode)
	}
	if secret := os.Getenv("TASKFLOW_TOKEN_SECRET"); secret != "" {
		c.Client.TokenSecret = secret
	}

	var err error
	if c.Client.MutationDelay, err = envDuration("TASKFLOW_MUTATION_DELAY", c.Client.MutationDelay); err != nil {
		return err
	}
	if c.Client.LogoutDelay, err = envDuration("TASKFLOW_LOGOUT_DELAY", c.Client.LogoutDelay); err != nil {
		return err
	}

	if backend := os.Getenv("TASKFLOW_STORAGE"); backend != "" {
		c.Storage.Backend = strings.ToLower(backend)
	}
	if path := os.Getenv("TASKFLOW_STORAGE_PATH"); path != "" {
		c.Storage.Path = path
	}

	return nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Client.AuthMode {
	case AuthModeMock, AuthModeHTTP:
	default:
		return fmt.Errorf("invalid auth mode '%s', must be one of: mock, http", c.Client.AuthMode)
	}

	if c.Client.MutationDelay < 0 || c.Client.LogoutDelay < 0 {
		return fmt.Errorf("mutation delays must not be negative")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("server port must not be empty")
	}

	return nil
}

// Addr returns the listen address for the backend stub
func (s ServerConfig) Addr() string {
	if strings.Contains(s.Port, ":") {
		return s.Port
	}
	return ":" + s.Port
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': %w", key, raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
