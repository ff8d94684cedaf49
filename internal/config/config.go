// Package config provides configuration management for fxpad using Viper for
// flexible loading from files, environment variables, and command-line flags.
//
// The configuration system supports YAML files, environment variable
// overrides with the FXPAD_ prefix, and validation. It manages the web server
// settings, the FIFO transport endpoint, and logging options.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/calc-sim/fxpad/internal/transport"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	Host           string   `yaml:"host"`
	Open           bool     `yaml:"open"`
	NoOpen         bool     `yaml:"no-open"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	Environment    string   `yaml:"environment"`
}

type TransportConfig struct {
	// Fifo is the named-pipe path shared with the calculator engine.
	Fifo string `yaml:"fifo"`
	// Watchdog recreates the pipe if it is removed while serving.
	Watchdog bool `yaml:"watchdog"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Apply server defaults if not set. Port 5000 matches the engine's
	// documented simulator address.
	if config.Server.Port == 0 {
		config.Server.Port = 5000
	}
	if config.Server.Host == "" {
		config.Server.Host = "localhost"
	}
	if config.Server.Environment == "" {
		config.Server.Environment = "development"
	}
	if !viper.IsSet("server.open") {
		config.Server.Open = true
	}

	// Override open if no-open was explicitly set via flag
	if viper.IsSet("server.no-open") && viper.GetBool("server.no-open") {
		config.Server.Open = false
	}

	// Handle allowed origins set via viper (workaround for viper slice handling)
	if viper.IsSet("server.allowed_origins") && len(config.Server.AllowedOrigins) == 0 {
		config.Server.AllowedOrigins = viper.GetStringSlice("server.allowed_origins")
	}

	// Apply transport defaults if not set
	if config.Transport.Fifo == "" {
		config.Transport.Fifo = transport.DefaultEndpoint
	}
	if !viper.IsSet("transport.watchdog") {
		config.Transport.Watchdog = true
	}

	// Apply log defaults if not set
	if config.Log.Level == "" {
		config.Log.Level = viper.GetString("log-level")
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates configuration values for security and correctness
func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := validateTransportConfig(&config.Transport); err != nil {
		return fmt.Errorf("transport config: %w", err)
	}

	if err := validateLogConfig(&config.Log); err != nil {
		return fmt.Errorf("log config: %w", err)
	}

	return nil
}

// validateServerConfig validates server configuration values
func validateServerConfig(config *ServerConfig) error {
	// Allow 0 for system-assigned ports in testing
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port %d is not in valid range 0-65535", config.Port)
	}

	if config.Host != "" {
		// Basic validation - no dangerous characters
		dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\"}
		for _, char := range dangerousChars {
			if strings.Contains(config.Host, char) {
				return fmt.Errorf("host contains dangerous character: %s", char)
			}
		}
	}

	return nil
}

// validateTransportConfig validates the FIFO endpoint path
func validateTransportConfig(config *TransportConfig) error {
	if config.Fifo == "" {
		return fmt.Errorf("empty fifo path")
	}

	// Reject path traversal attempts before cleaning so "/tmp/../etc/x"
	// cannot smuggle the endpoint outside its directory.
	if strings.Contains(config.Fifo, "..") {
		return fmt.Errorf("fifo path contains traversal: %s", config.Fifo)
	}

	cleanPath := filepath.Clean(config.Fifo)

	// The engine opens the same path by absolute name; relative paths would
	// silently desynchronize the two processes.
	if !filepath.IsAbs(cleanPath) {
		return fmt.Errorf("fifo path must be absolute: %s", config.Fifo)
	}

	return nil
}

// validateLogConfig validates logging configuration values
func validateLogConfig(config *LogConfig) error {
	switch config.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s", config.Level)
	}

	switch config.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format: %s", config.Format)
	}

	return nil
}
