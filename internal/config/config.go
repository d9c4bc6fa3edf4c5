package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Discord DiscordConfig `yaml:"discord"`
	Server  ServerConfig  `yaml:"server"`
	Relay   RelayConfig   `yaml:"relay"`
	Fetch   FetchConfig   `yaml:"fetch"`
}

// DiscordConfig holds bot session configuration.
type DiscordConfig struct {
	Token   string `yaml:"token" envconfig:"DISCORD_BOT_TOKEN"`
	GuildID string `yaml:"guild_id" envconfig:"DISCORD_GUILD_ID"`
}

// ServerConfig holds the optional ops HTTP server configuration.
type ServerConfig struct {
	Enabled      bool          `yaml:"enabled" envconfig:"SERVER_ENABLED" default:"false"`
	Host         string        `yaml:"host" envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port         int           `yaml:"port" envconfig:"SERVER_PORT" default:"8319"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
}

// RelayConfig holds limits for the video relay pipeline.
type RelayConfig struct {
	// MaxUploadBytes mirrors Discord's attachment ceiling for boosted servers.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" envconfig:"RELAY_MAX_UPLOAD_BYTES" default:"52428800"`
	// MaxErrorLength keeps relayed error text inside Discord's message limit.
	MaxErrorLength int `yaml:"max_error_length" envconfig:"RELAY_MAX_ERROR_LENGTH" default:"1800"`
	// MaxDescription is the tweet-length cap applied to embed descriptions.
	MaxDescription int    `yaml:"max_description" envconfig:"RELAY_MAX_DESCRIPTION" default:"280"`
	AvatarTemplate string `yaml:"avatar_template" envconfig:"RELAY_AVATAR_TEMPLATE" default:"https://unavatar.io/x/%s"`
	// TempDir is the base for per-request scratch directories. Empty means
	// the system default.
	TempDir string `yaml:"temp_dir" envconfig:"RELAY_TEMP_DIR"`
}

// FetchConfig holds yt-dlp invocation settings.
type FetchConfig struct {
	Binary  string        `yaml:"binary" envconfig:"YTDLP_BINARY" default:"yt-dlp"`
	Timeout time.Duration `yaml:"timeout" envconfig:"YTDLP_TIMEOUT" default:"60s"`
	Format  string        `yaml:"format" envconfig:"YTDLP_FORMAT" default:"http-2176/http-832/http-288/best[protocol*=https][ext=mp4]/best"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	// Load from YAML file if provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// Override with environment variables
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set.
func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}
	if c.Relay.MaxUploadBytes <= 0 {
		return fmt.Errorf("RELAY_MAX_UPLOAD_BYTES must be positive")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("YTDLP_TIMEOUT must be positive")
	}
	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
