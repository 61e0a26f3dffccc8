package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/accessd/config"
	ConfigFileName    = "accessd.yml"
)

// ValidLogLevels is the list of accepted log level strings
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Config holds all accessd configuration settings
type Config struct {
	// BindAddress is the server listen address
	BindAddress string `yaml:"bind_address"`

	// Port is the server listen port
	Port int `yaml:"port"`

	// LogLevel controls logger verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// CatalogCacheTTL is the plant-unit catalog cache TTL in seconds
	CatalogCacheTTL int `yaml:"catalog_cache_ttl"`

	// FeedEnabled enables the permission change feed over WebSocket
	FeedEnabled bool `yaml:"feed_enabled"`

	// AuditEnabled enables audit event persistence
	AuditEnabled bool `yaml:"audit_enabled"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		BindAddress:     "0.0.0.0",
		Port:            8000,
		LogLevel:        "info",
		CatalogCacheTTL: 30,
		FeedEnabled:     true,
		AuditEnabled:    true,
		sources:         make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("ACCESSD_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func attributeNames() []string {
	return []string{
		"bind_address", "port", "log_level",
		"catalog_cache_ttl", "feed_enabled", "audit_enabled",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.Port != 0 {
		c.Port = file.Port
		c.sources["port"] = "file"
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = "file"
	}
	if file.CatalogCacheTTL != 0 {
		c.CatalogCacheTTL = file.CatalogCacheTTL
		c.sources["catalog_cache_ttl"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("ACCESSD_BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := os.Getenv("ACCESSD_PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.Port = i
			c.sources["port"] = "environment"
		}
	}
	if val := os.Getenv("ACCESSD_LOG_LEVEL"); val != "" {
		c.LogLevel = val
		c.sources["log_level"] = "environment"
	}
	if val := os.Getenv("ACCESSD_CATALOG_CACHE_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.CatalogCacheTTL = i
			c.sources["catalog_cache_ttl"] = "environment"
		}
	}
	if val := os.Getenv("ACCESSD_FEED_ENABLED"); val != "" {
		c.FeedEnabled = val == "true" || val == "1"
		c.sources["feed_enabled"] = "environment"
	}
	if val := os.Getenv("ACCESSD_AUDIT_ENABLED"); val != "" {
		c.AuditEnabled = val == "true" || val == "1"
		c.sources["audit_enabled"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// CatalogTTL returns the catalog cache TTL as a duration
func (c *Config) CatalogTTL() time.Duration {
	return time.Duration(c.CatalogCacheTTL) * time.Second
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.CatalogCacheTTL <= 0 {
		return fmt.Errorf("invalid catalog_cache_ttl: %d", c.CatalogCacheTTL)
	}
	for _, level := range ValidLogLevels {
		if c.LogLevel == level {
			return nil
		}
	}
	return fmt.Errorf("invalid log_level: %s", c.LogLevel)
}

// Attributes returns all configuration attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "port", Value: strconv.Itoa(c.Port), Source: c.Source("port")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "catalog_cache_ttl", Value: strconv.Itoa(c.CatalogCacheTTL), Source: c.Source("catalog_cache_ttl")},
		{Name: "feed_enabled", Value: strconv.FormatBool(c.FeedEnabled), Source: c.Source("feed_enabled")},
		{Name: "audit_enabled", Value: strconv.FormatBool(c.AuditEnabled), Source: c.Source("audit_enabled")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-25s %-20s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-25s %-20s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-25s %-20s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}
