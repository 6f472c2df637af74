package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"modelbench/internal"
	"modelbench/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	ModelAPI ModelAPIConfig
	Upload   UploadConfig
	Log      LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// ModelAPIConfig holds the training API connection settings
type ModelAPIConfig struct {
	URL     string
	Timeout time.Duration
}

// UploadConfig holds dataset upload limits
type UploadConfig struct {
	MaxFileSize     int64
	MaxConcurrent   int64
	PreviewRowLimit int
	PadShortRows    bool
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:   *loadServerConfig(),
		ModelAPI: *loadModelAPIConfig(),
		Upload:   *loadUploadConfig(),
		Log:      *loadLogConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func loadModelAPIConfig() *ModelAPIConfig {
	return &ModelAPIConfig{
		URL:     getEnvOrDefault("MODEL_API_URL", "http://127.0.0.1:8000"),
		Timeout: getEnvDurationOrDefault("MODEL_API_TIMEOUT", 2*time.Minute),
	}
}

func loadUploadConfig() *UploadConfig {
	return &UploadConfig{
		MaxFileSize:     getEnvInt64OrDefault("UPLOAD_MAX_FILE_SIZE", 50<<20),
		MaxConcurrent:   getEnvInt64OrDefault("UPLOAD_MAX_CONCURRENT", 4),
		PreviewRowLimit: getEnvIntOrDefault("PREVIEW_ROW_LIMIT", 10),
		PadShortRows:    getEnvBoolOrDefault("PAD_SHORT_ROWS", false),
	}
}

func loadLogConfig() *LogConfig {
	return &LogConfig{
		Level:  strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "INFO")),
		Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", "text")),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if u, err := url.Parse(config.ModelAPI.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return errors.ConfigInvalid("MODEL_API_URL must be an absolute URL")
	}
	if config.ModelAPI.Timeout <= 0 {
		return errors.ConfigInvalid("MODEL_API_TIMEOUT must be positive")
	}
	if config.Upload.MaxFileSize <= 0 {
		return errors.ConfigInvalid("UPLOAD_MAX_FILE_SIZE must be positive")
	}
	if config.Upload.MaxConcurrent <= 0 {
		return errors.ConfigInvalid("UPLOAD_MAX_CONCURRENT must be positive")
	}
	if config.Upload.PreviewRowLimit <= 0 {
		return errors.ConfigInvalid("PREVIEW_ROW_LIMIT must be positive")
	}
	if _, ok := internal.ParseLogLevel(config.Log.Level); !ok {
		return errors.ConfigInvalid("LOG_LEVEL must be one of ERROR, WARN, INFO, DEBUG, TRACE")
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return errors.ConfigInvalid("LOG_FORMAT must be text or json")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
