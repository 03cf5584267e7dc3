// Package config loads the client configuration from YAML, .env files,
// and ECHOFORGE_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/echoforge/echoforge-go/logging"
	"github.com/echoforge/echoforge-go/tracking"
	"github.com/echoforge/echoforge-go/transport"
)

const envPrefix = "ECHOFORGE"

// Config is the full client configuration.
type Config struct {
	// Transport configures the HTTP client.
	Transport transport.Config `yaml:"transport" mapstructure:"transport"`
	// Polling configures the job status tracker.
	Polling tracking.Config `yaml:"polling" mapstructure:"polling"`
	// Download configures where artifacts are saved.
	Download DownloadConfig `yaml:"download" mapstructure:"download"`
	// Logging configures the logger.
	Logging logging.Config `yaml:"logging" mapstructure:"logging"`
}

// DownloadConfig configures artifact downloads.
type DownloadConfig struct {
	// Dir is the directory artifacts are saved into.
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// ApplyDefaults fills in zero-value fields across all sections.
func (c *Config) ApplyDefaults() {
	if c.Transport.BaseURL == "" {
		c.Transport.BaseURL = "http://localhost:5000"
	}
	c.Transport.ApplyDefaults()
	c.Polling.ApplyDefaults()
	c.Logging.ApplyDefaults()
}

// Validate checks all sections.
func (c *Config) Validate() error {
	if err := c.Transport.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return nil
}

// Load reads configuration. An explicit path wins; otherwise config.yml
// is searched in the working directory and the user config directory.
// Environment variables override file values (e.g. ECHOFORGE_TRANSPORT_BASE_URL),
// and a .env file in the working directory is loaded first if present.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("config: load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetDefault("transport.base_url", "http://localhost:5000")
	v.SetDefault("transport.timeout", 30*time.Second)
	v.SetDefault("polling.interval", 2*time.Second)
	v.SetDefault("polling.completed_delay", 2*time.Second)
	v.SetDefault("polling.timeout", 5*time.Minute)
	v.SetDefault("download.dir", ".")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(dir + "/echoforge")
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
