package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the configuration for the matcher service
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Matcher MatcherConfig `mapstructure:"matcher"`
	Intake  IntakeConfig  `mapstructure:"intake"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// MatcherConfig holds retrieval core settings
type MatcherConfig struct {
	// Workers bounds the per-request vectorization fan-out.
	// Zero means one worker per CPU.
	Workers int `mapstructure:"workers"`
}

// IntakeConfig holds file intake settings
type IntakeConfig struct {
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
	MaxContentBytes   int64    `mapstructure:"max_content_bytes"`
}

// StorageConfig holds report persistence settings
type StorageConfig struct {
	// ReportsDir enables on-disk match reports when non-empty.
	ReportsDir string `mapstructure:"reports_dir"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Load reads configuration from defaults, MATCHER_* environment
// variables, and an optional YAML config file, in increasing precedence.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("matcher.workers", 0)
	v.SetDefault("intake.allowed_extensions", []string{".txt", ".md", ".html", ".htm"})
	v.SetDefault("intake.max_content_bytes", int64(1<<20))
	v.SetDefault("storage.reports_dir", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.json", false)

	v.SetEnvPrefix("MATCHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	if c.Intake.MaxContentBytes <= 0 {
		return fmt.Errorf("intake.max_content_bytes must be positive")
	}
	if len(c.Intake.AllowedExtensions) == 0 {
		return fmt.Errorf("intake.allowed_extensions must not be empty")
	}
	return nil
}
