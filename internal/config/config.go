package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"screenlog/internal/app/errors"
)

// Config represents the application configuration
type Config struct {
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Buffer struct {
		Limit   int `yaml:"limit"`
		History int `yaml:"history"`
	} `yaml:"buffer"`
	Levels     map[string]bool `yaml:"levels"`
	Features   Features        `yaml:"features"`
	Serializer Serializer      `yaml:"serializer"`
	Storage    Storage         `yaml:"storage"`
	Socket     Socket          `yaml:"socket"`
	Scripts    Scripts         `yaml:"scripts"`
	Console    Console         `yaml:"console"`
	Version    int             `yaml:"version"`
}

// Features holds the optional rendering behaviors that can be toggled at runtime
type Features struct {
	PrettyPrint   bool   `yaml:"prettyPrint"`
	Colors        bool   `yaml:"colors"`
	TimeCounter   bool   `yaml:"timeCounter"`
	Console       bool   `yaml:"console"`
	CapturePanics bool   `yaml:"capturePanics"`
	TextSize      string `yaml:"textSize"`
}

// Serializer holds the bounds applied when converting values to text
type Serializer struct {
	MaxDepth        int `yaml:"maxDepth"`
	MaxStringLength int `yaml:"maxStringLength"`
	MaxArrayLength  int `yaml:"maxArrayLength"`
}

// Storage represents the persistent storage sink configuration
type Storage struct {
	Enabled bool   `yaml:"enabled"`
	Type    string `yaml:"type"`
	Key     string `yaml:"key"`
	Limit   int    `yaml:"limit"`
	Path    string `yaml:"path"`
	Quota   int64  `yaml:"quota"`
}

// Socket represents the remote control channel configuration
type Socket struct {
	Enabled   bool          `yaml:"enabled"`
	Host      string        `yaml:"host"`
	Port      int           `yaml:"port"`
	Reconnect time.Duration `yaml:"reconnect"`
	Token     string        `yaml:"token"`
}

// Scripts controls the executeScript remote command
type Scripts struct {
	Enabled bool          `yaml:"enabled"`
	Shell   string        `yaml:"shell"`
	Timeout time.Duration `yaml:"timeout"`
	Workers int           `yaml:"workers"`
}

// Console represents the operator console server configuration
type Console struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	Buffer int    `yaml:"buffer"`
}

// knownLevels lists the level names accepted in the levels section
var knownLevels = map[string]bool{
	"debug": true,
	"log":   true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{
		Levels: map[string]bool{
			"debug": false,
			"log":   true,
			"info":  true,
			"warn":  true,
			"error": true,
		},
		Version: 1,
	}

	cfg.Logging.Level = LogLevel
	cfg.Logging.Format = LogFormat

	cfg.Buffer.Limit = DisplayLimit

	cfg.Features.Console = true
	cfg.Features.TextSize = TextSize

	cfg.Serializer.MaxDepth = MaxDepth
	cfg.Serializer.MaxStringLength = MaxStringLength
	cfg.Serializer.MaxArrayLength = MaxArrayLength

	cfg.Storage.Type = StorageSession
	cfg.Storage.Key = StorageKey
	cfg.Storage.Limit = StorageLimit
	cfg.Storage.Path = StoragePath
	cfg.Storage.Quota = StorageQuota

	cfg.Socket.Host = SocketHost
	cfg.Socket.Port = SocketPort
	cfg.Socket.Reconnect = ReconnectInterval

	cfg.Scripts.Shell = ScriptShell
	cfg.Scripts.Timeout = ScriptTimeout
	cfg.Scripts.Workers = ScriptWorkers

	cfg.Console.Host = ConsoleHost
	cfg.Console.Port = SocketPort
	cfg.Console.Buffer = ConsoleBuffer

	return cfg
}

// Load loads the configuration from the given file, the .env file and SCREENLOG_* variables
func Load(path string) (*Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToReadConfig, err)
	}

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindDefaults(v, cfg)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrFailedToParseConfig, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToReadConfig, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToParseConfig, err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// Save writes the configuration as yaml to the given path
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteConfig, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteConfig, err)
	}

	return nil
}

// bindDefaults registers every scalar key so environment overrides reach Unmarshal
func bindDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("buffer.limit", cfg.Buffer.Limit)
	v.SetDefault("buffer.history", cfg.Buffer.History)
	v.SetDefault("features.prettyprint", cfg.Features.PrettyPrint)
	v.SetDefault("features.colors", cfg.Features.Colors)
	v.SetDefault("features.timecounter", cfg.Features.TimeCounter)
	v.SetDefault("features.console", cfg.Features.Console)
	v.SetDefault("features.capturepanics", cfg.Features.CapturePanics)
	v.SetDefault("features.textsize", cfg.Features.TextSize)
	v.SetDefault("serializer.maxdepth", cfg.Serializer.MaxDepth)
	v.SetDefault("serializer.maxstringlength", cfg.Serializer.MaxStringLength)
	v.SetDefault("serializer.maxarraylength", cfg.Serializer.MaxArrayLength)
	v.SetDefault("storage.enabled", cfg.Storage.Enabled)
	v.SetDefault("storage.type", cfg.Storage.Type)
	v.SetDefault("storage.key", cfg.Storage.Key)
	v.SetDefault("storage.limit", cfg.Storage.Limit)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("storage.quota", cfg.Storage.Quota)
	v.SetDefault("socket.enabled", cfg.Socket.Enabled)
	v.SetDefault("socket.host", cfg.Socket.Host)
	v.SetDefault("socket.port", cfg.Socket.Port)
	v.SetDefault("socket.reconnect", cfg.Socket.Reconnect)
	v.SetDefault("socket.token", cfg.Socket.Token)
	v.SetDefault("scripts.enabled", cfg.Scripts.Enabled)
	v.SetDefault("scripts.shell", cfg.Scripts.Shell)
	v.SetDefault("scripts.timeout", cfg.Scripts.Timeout)
	v.SetDefault("scripts.workers", cfg.Scripts.Workers)
	v.SetDefault("console.host", cfg.Console.Host)
	v.SetDefault("console.port", cfg.Console.Port)
	v.SetDefault("console.buffer", cfg.Console.Buffer)
}

// normalize lowercases enumerated string settings
func (c *Config) normalize() {
	c.Storage.Type = strings.ToLower(strings.TrimSpace(c.Storage.Type))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	levels := make(map[string]bool, len(c.Levels))
	for name, enabled := range c.Levels {
		levels[strings.ToLower(strings.TrimSpace(name))] = enabled
	}

	c.Levels = levels
}

// SocketURL returns the websocket endpoint of the control channel
func (c *Config) SocketURL() string {
	return fmt.Sprintf("ws://%s:%d", c.Socket.Host, c.Socket.Port)
}

// ConsoleAddr returns the listen address of the operator console
func (c *Config) ConsoleAddr() string {
	return fmt.Sprintf("%s:%d", c.Console.Host, c.Console.Port)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateBuffer(); err != nil {
		return err
	}

	if err := c.validateLevels(); err != nil {
		return err
	}

	if err := c.validateSerializer(); err != nil {
		return err
	}

	if err := c.validateStorage(); err != nil {
		return err
	}

	return c.validateSocket()
}

// validateBuffer validates buffer capacities
func (c *Config) validateBuffer() error {
	if c.Buffer.Limit <= 0 {
		return errors.ErrInvalidCapacity
	}

	if c.Buffer.History < 0 {
		return fmt.Errorf("%w: history %d", errors.ErrInvalidCapacity, c.Buffer.History)
	}

	return nil
}

// validateLevels rejects unknown level names
func (c *Config) validateLevels() error {
	for name := range c.Levels {
		if !knownLevels[name] {
			return fmt.Errorf("%w: '%s'", errors.ErrInvalidLevel, name)
		}
	}

	return nil
}

// validateSerializer validates serializer bounds
func (c *Config) validateSerializer() error {
	s := c.Serializer
	if s.MaxDepth <= 0 || s.MaxStringLength <= 0 || s.MaxArrayLength <= 0 {
		return fmt.Errorf("%w: serializer bounds", errors.ErrInvalidCapacity)
	}

	return nil
}

// validateStorage validates storage settings
func (c *Config) validateStorage() error {
	switch c.Storage.Type {
	case StorageSession, StorageLocal:
	default:
		return fmt.Errorf("%w: got '%s'", errors.ErrInvalidStorageType, c.Storage.Type)
	}

	if c.Storage.Key == "" {
		return errors.ErrInvalidStorageKey
	}

	if c.Storage.Limit <= 0 {
		return fmt.Errorf("%w: storage limit %d", errors.ErrInvalidCapacity, c.Storage.Limit)
	}

	return nil
}

// validateSocket validates control channel and console settings
func (c *Config) validateSocket() error {
	if c.Socket.Port <= 0 || c.Socket.Port > 65535 {
		return errors.ErrInvalidSocketPort
	}

	if c.Socket.Reconnect <= 0 {
		return errors.ErrInvalidReconnect
	}

	if c.Console.Port <= 0 || c.Console.Port > 65535 {
		return errors.ErrInvalidSocketPort
	}

	if c.Scripts.Workers <= 0 {
		return fmt.Errorf("%w: script workers %d", errors.ErrInvalidCapacity, c.Scripts.Workers)
	}

	return nil
}
