package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// DefaultPath is used when CONFIG_PATH is not set
const DefaultPath = "config/config.yaml"

// BreakerConfig tunes the circuit breaker in front of the inventory API
type BreakerConfig struct {
	MaxRequests         uint32 `yaml:"maxRequests"`
	IntervalSeconds     int    `yaml:"intervalSeconds"`
	TimeoutSeconds      int    `yaml:"timeoutSeconds"`
	ConsecutiveFailures uint32 `yaml:"consecutiveFailures"`
}

// InventoryConfig points at the remote inventory API
type InventoryConfig struct {
	BaseURL        string        `yaml:"baseURL"`
	PerPage        int           `yaml:"perPage"`
	TimeoutSeconds int           `yaml:"timeoutSeconds"`
	Breaker        BreakerConfig `yaml:"breaker"`
}

// RedisConfig is used when the cache provider is "redis"
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db"`
}

// CacheConfig controls caching of vulnerability detail responses
type CacheConfig struct {
	Enabled    bool        `yaml:"enabled"`
	Provider   string      `yaml:"provider"` // "memory" ou "redis"
	TTLSeconds int         `yaml:"ttlSeconds"`
	Size       int         `yaml:"size"`
	Redis      RedisConfig `yaml:"redis"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`

	Inventory InventoryConfig `yaml:"inventory"`
	Cache     CacheConfig     `yaml:"cache"`
}

// Default returns a configuration usable without any file
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig charge la configuration depuis un fichier YAML
func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("❌ error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("❌ error parsing config: %w", err)
	}

	loadConfigFromEnv(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// FromEnv builds a configuration from defaults and environment variables only
func FromEnv() (*Config, error) {
	config := &Config{}
	loadConfigFromEnv(config)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Path returns CONFIG_PATH or the default location
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

// Validate fills defaults and rejects settings the dashboard cannot run with
func (c *Config) Validate() error {
	c.applyDefaults()

	if !strings.HasPrefix(c.Inventory.BaseURL, "http://") && !strings.HasPrefix(c.Inventory.BaseURL, "https://") {
		return fmt.Errorf("❌ invalid inventory.baseURL %q: must start with http:// or https://", c.Inventory.BaseURL)
	}

	switch c.Cache.Provider {
	case "memory", "redis":
	default:
		return fmt.Errorf("❌ invalid cache.provider %q: must be memory or redis", c.Cache.Provider)
	}
	if c.Cache.Enabled && c.Cache.Provider == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("❌ cache.redis.addr is required when cache.provider is redis")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3030
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	if c.Inventory.BaseURL == "" {
		c.Inventory.BaseURL = "http://localhost:5000"
	}
	// same bounds as the backend: 10 by default, at most 100
	switch {
	case c.Inventory.PerPage > 100:
		c.Inventory.PerPage = 100
	case c.Inventory.PerPage <= 0:
		c.Inventory.PerPage = 10
	}
	if c.Inventory.TimeoutSeconds <= 0 {
		c.Inventory.TimeoutSeconds = 15
	}

	b := &c.Inventory.Breaker
	if b.MaxRequests == 0 {
		b.MaxRequests = 5
	}
	if b.IntervalSeconds <= 0 {
		b.IntervalSeconds = 3
	}
	if b.TimeoutSeconds <= 0 {
		b.TimeoutSeconds = 20
	}
	if b.ConsecutiveFailures == 0 {
		b.ConsecutiveFailures = 5
	}

	if c.Cache.Provider == "" {
		c.Cache.Provider = "memory"
	}
	if c.Cache.TTLSeconds <= 0 {
		c.Cache.TTLSeconds = 60
	}
	if c.Cache.Size <= 0 {
		c.Cache.Size = 256
	}
}

// RequestTimeout is the per-request timeout towards the inventory API
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Inventory.TimeoutSeconds) * time.Second
}

// CacheTTL is how long a cached vulnerability list stays valid
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// Charge les configurations depuis les variables d'environnement
func loadConfigFromEnv(config *Config) {
	// Paramètres du serveur
	if portStr := os.Getenv("SERVER_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			config.Server.Port = port
		}
	}

	// Paramètres de logging
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.Logging.Level = logLevel
	}
	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		config.Logging.Format = logFormat
	}

	// Inventory API
	if baseURL := os.Getenv("INVENTORY_URL"); baseURL != "" {
		config.Inventory.BaseURL = baseURL
	}
	if perPage := os.Getenv("INVENTORY_PER_PAGE"); perPage != "" {
		if n, err := strconv.Atoi(perPage); err == nil {
			config.Inventory.PerPage = n
		}
	}
	if timeout := os.Getenv("INVENTORY_TIMEOUT"); timeout != "" {
		if n, err := strconv.Atoi(timeout); err == nil {
			config.Inventory.TimeoutSeconds = n
		}
	}

	// Cache
	if enabled := os.Getenv("CACHE_ENABLED"); enabled != "" {
		config.Cache.Enabled = enabled == "true"
	}
	if provider := os.Getenv("CACHE_PROVIDER"); provider != "" {
		config.Cache.Provider = provider
	}
	if ttl := os.Getenv("CACHE_TTL"); ttl != "" {
		if n, err := strconv.Atoi(ttl); err == nil {
			config.Cache.TTLSeconds = n
		}
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		config.Cache.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		config.Cache.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			config.Cache.Redis.DB = n
		}
	}
}
