package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Archive   ArchiveConfig
	Redis     RedisConfig
	Websocket WebsocketConfig
	Retention RetentionConfig
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// StoreConfig locates the JSON document store.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// ArchiveConfig configures the optional TimescaleDB reading archive. The
// archive is disabled when Enabled is false; ring-buffer storage in the
// document store always applies.
type ArchiveConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig configures the optional device-token resolution cache.
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type WebsocketConfig struct {
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
}

// RetentionConfig bounds how long archived readings are kept.
type RetentionConfig struct {
	MaxReadingAge time.Duration `mapstructure:"max_reading_age"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetEnvPrefix("IOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Load config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.shutdown_timeout", "30s")
	viper.SetDefault("server.allowed_origins", []string{"*"})

	// Store defaults
	viper.SetDefault("store.path", "users.json")

	// Archive defaults
	viper.SetDefault("archive.enabled", false)
	viper.SetDefault("archive.sslmode", "disable")
	viper.SetDefault("archive.port", 5432)

	// Redis defaults
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.token_ttl", "10m")

	// Websocket defaults
	viper.SetDefault("websocket.write_timeout", "10s")
	viper.SetDefault("websocket.max_message_size", 64*1024)

	// Retention defaults
	viper.SetDefault("retention.max_reading_age", "2160h") // 90 days
	viper.SetDefault("retention.sweep_interval", "6h")
}

func validateConfig(config *Config) error {
	if config.Store.Path == "" {
		return fmt.Errorf("store path is required")
	}
	if config.Archive.Enabled && config.Archive.Host == "" {
		return fmt.Errorf("archive host is required when the archive is enabled")
	}
	if config.Redis.Enabled && config.Redis.Host == "" {
		return fmt.Errorf("redis host is required when the token cache is enabled")
	}
	return nil
}
