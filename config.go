package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the gofast-server process.
type Config struct {
	// Server settings
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	// Resource limits
	MaxClients int           `mapstructure:"max_clients"`
	MaxFrame   string        `mapstructure:"max_frame"` // e.g. "512MB"
	Timeout    time.Duration `mapstructure:"timeout"`

	// Logging
	LogLevel string `mapstructure:"log_level"`

	// Advanced
	TCPKeepAlive bool          `mapstructure:"tcp_keepalive"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DefaultConfig returns a Config with default values: bind address
// 127.0.0.1:6379 and a conservative frame size cap.
func DefaultConfig() *Config {
	return &Config{
		Host:         "127.0.0.1",
		Port:         6379,
		MaxClients:   10000,
		MaxFrame:     "512MB",
		Timeout:      30 * time.Second,
		LogLevel:     "info",
		TCPKeepAlive: true,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// LoadConfig loads configuration from environment variables, config file,
// and command line flags, in viper's usual precedence order.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	viper.SetConfigName("gofast")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/gofast/")
	viper.AddConfigPath("$HOME/.gofast")

	viper.SetEnvPrefix("GOFAST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("host", config.Host)
	viper.SetDefault("port", config.Port)
	viper.SetDefault("max_clients", config.MaxClients)
	viper.SetDefault("max_frame", config.MaxFrame)
	viper.SetDefault("timeout", config.Timeout)
	viper.SetDefault("log_level", config.LogLevel)
	viper.SetDefault("tcp_keepalive", config.TCPKeepAlive)
	viper.SetDefault("read_timeout", config.ReadTimeout)
	viper.SetDefault("write_timeout", config.WriteTimeout)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", c.Port)
	}
	if c.MaxClients < 1 {
		return fmt.Errorf("max_clients must be at least 1")
	}

	validLogLevels := []string{"trace", "debug", "info", "warn", "error", "fatal"}
	valid := false
	for _, level := range validLogLevels {
		if c.LogLevel == level {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid log_level: %s (must be one of: %s)",
			c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if _, err := c.ParseMaxFrame(); err != nil {
		return err
	}

	return nil
}

// ParseMaxFrame converts the human-readable MaxFrame size ("512MB") into a
// byte count, the cap the frame codec enforces on a single bulk string or
// array length.
func (c *Config) ParseMaxFrame() (int64, error) {
	size := strings.ToUpper(c.MaxFrame)
	if size == "" {
		return 0, nil // unset: the codec keeps its default cap
	}

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(size, "KB"):
		multiplier = 1024
		size = strings.TrimSuffix(size, "KB")
	case strings.HasSuffix(size, "MB"):
		multiplier = 1024 * 1024
		size = strings.TrimSuffix(size, "MB")
	case strings.HasSuffix(size, "GB"):
		multiplier = 1024 * 1024 * 1024
		size = strings.TrimSuffix(size, "GB")
	}

	value, err := strconv.ParseInt(size, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid max_frame size: %s", c.MaxFrame)
	}
	return value * multiplier, nil
}

// String returns a one-line representation of the config. The startup
// banner in cmd.go prints the fields itself and does not call it.
func (c *Config) String() string {
	return fmt.Sprintf("gofast-server config: %s:%d, MaxFrame: %s, LogLevel: %s",
		c.Host, c.Port, c.MaxFrame, c.LogLevel)
}
