package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the complete bot configuration
type Config struct {
	Bot     BotConfig     `json:"bot" yaml:"bot"`
	HTTP    HTTPConfig    `json:"http" yaml:"http"`
	Storage StorageConfig `json:"storage" yaml:"storage"`
	Tron    TronConfig    `json:"tron" yaml:"tron"`
	Kafka   KafkaConfig   `json:"kafka" yaml:"kafka"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// BotConfig contains the Telegram side. An empty token disables polling.
type BotConfig struct {
	Token       string `json:"token" yaml:"token"`
	AdminID     int64  `json:"admin_id" yaml:"admin_id"`
	PollTimeout int    `json:"poll_timeout" yaml:"poll_timeout"` // seconds
}

type HTTPConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// StorageConfig selects the ledger backend
type StorageConfig struct {
	Driver string `json:"driver" yaml:"driver"` // file, memory, sqlite or postgres
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	DSN    string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
}

type TronConfig struct {
	BaseURL string `json:"base_url" yaml:"base_url"`
	APIKey  string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Timeout string `json:"timeout" yaml:"timeout"` // e.g. "10s"
}

// KafkaConfig enables event publishing when Brokers is not empty.
type KafkaConfig struct {
	Brokers     []string `json:"brokers,omitempty" yaml:"brokers,omitempty"`
	TopicPrefix string   `json:"topic_prefix" yaml:"topic_prefix"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug|info|warn|error
	Format string `json:"format" yaml:"format"` // text|json
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Bot: BotConfig{
			PollTimeout: 60,
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Storage: StorageConfig{
			Driver: "file",
			Path:   "data.json",
		},
		Tron: TronConfig{
			BaseURL: "https://apilist.tronscanapi.com",
			Timeout: "10s",
		},
		Kafka: KafkaConfig{
			TopicPrefix: "ledgerbot.",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
// on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	return cfg, nil
}

// Load reads path (defaults when empty), overlays the environment and
// validates the result.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(envFile); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv loads envFile into the process environment if it exists (without
// overriding variables already set), then copies the known variables into c.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", envFile, err)
		}
	}

	if v := env("BOT_TOKEN"); v != "" {
		c.Bot.Token = v
	}
	if v := env("ADMIN_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("ADMIN_ID: %w", err)
		}
		c.Bot.AdminID = id
	}
	if v := env("DATA_FILE"); v != "" {
		c.Storage.Path = v
	}
	if v := env("LEDGER_DB_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := env("LEDGER_DB_DSN"); v != "" {
		c.Storage.DSN = v
	}
	if v := env("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitList(v)
	}
	if v := env("TRON_API_KEY"); v != "" {
		c.Tron.APIKey = v
	}
	if v := env("HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "file", "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path required for %s driver", c.Storage.Driver)
		}
	case "postgres":
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn required for postgres driver")
		}
	case "memory":
	default:
		return fmt.Errorf("storage.driver must be one of file, memory, sqlite, postgres")
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	if c.Bot.AdminID < 0 {
		return fmt.Errorf("bot.admin_id must not be negative")
	}
	if c.Bot.PollTimeout < 0 {
		return fmt.Errorf("bot.poll_timeout must not be negative")
	}
	if _, err := c.TronTimeout(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'text' or 'json'")
	}
	return nil
}

// TronTimeout parses tron.timeout, defaulting to 10s when empty.
func (c *Config) TronTimeout() (time.Duration, error) {
	if c.Tron.Timeout == "" {
		return 10 * time.Second, nil
	}
	d, err := time.ParseDuration(c.Tron.Timeout)
	if err != nil {
		return 0, fmt.Errorf("tron.timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("tron.timeout must be positive")
	}
	return d, nil
}

func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
