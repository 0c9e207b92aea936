package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Chat struct {
		ConnectorTimeout  time.Duration `yaml:"connector_timeout"`
		TransactionLimit  int           `yaml:"transaction_limit"`
		RateLimitCapacity float64       `yaml:"rate_limit_capacity"`
		RateLimitRefill   float64       `yaml:"rate_limit_refill"`
	} `yaml:"chat"`
	SearchCache struct {
		TTL      time.Duration `yaml:"ttl"`
		Capacity int           `yaml:"capacity"`
	} `yaml:"search_cache"`
	QuoteCache struct {
		TTL   time.Duration `yaml:"ttl"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"quote_cache"`
	Supabase struct {
		URL        string `yaml:"url"`
		ServiceKey string `yaml:"service_key"`
	} `yaml:"supabase"`
	FX struct {
		BaseURL   string   `yaml:"base_url"`
		AccessKey string   `yaml:"access_key"`
		Base      string   `yaml:"base"`
		Symbols   []string `yaml:"symbols"`
	} `yaml:"fx"`
	Stocks struct {
		APIKey  string `yaml:"api_key"`
		BaseURL string `yaml:"base_url"`
		Stream  struct {
			Enabled        bool          `yaml:"enabled"`
			WebSocketURL   string        `yaml:"websocket_url"`
			Symbols        []string      `yaml:"symbols"`
			ReconnectDelay time.Duration `yaml:"reconnect_delay"`
			PingInterval   time.Duration `yaml:"ping_interval"`
		} `yaml:"stream"`
	} `yaml:"stocks"`
	Crypto struct {
		BaseURL    string `yaml:"base_url"`
		VsCurrency string `yaml:"vs_currency"`
	} `yaml:"crypto"`
	Search struct {
		APIKey     string `yaml:"api_key"`
		BaseURL    string `yaml:"base_url"`
		MaxResults int    `yaml:"max_results"`
	} `yaml:"search"`
	AI struct {
		APIKey      string  `yaml:"api_key"`
		BaseURL     string  `yaml:"base_url"`
		Region      string  `yaml:"region"`
		Model       string  `yaml:"model"`
		Temperature float32 `yaml:"temperature"`
	} `yaml:"ai"`
	Kafka struct {
		Enabled     bool     `yaml:"enabled"`
		Brokers     []string `yaml:"brokers"`
		Topic       string   `yaml:"topic"`
		Compression string   `yaml:"compression"`
	} `yaml:"kafka"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment
// variables. Provider credentials live in the environment only; a missing
// credential degrades the matching connector rather than failing startup.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("SUPABASE_URL"); v != "" {
		c.Supabase.URL = v
	}
	if v := os.Getenv("SUPABASE_SERVICE_KEY"); v != "" {
		c.Supabase.ServiceKey = v
	}
	if v := os.Getenv("EXCHANGERATE_ACCESS_KEY"); v != "" {
		c.FX.AccessKey = v
	}
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		c.Stocks.APIKey = v
	}
	if v := os.Getenv("TAVILY_API_KEY"); v != "" {
		c.Search.APIKey = v
	}
	if v := os.Getenv("ARK_API_KEY"); v != "" {
		c.AI.APIKey = v
	}
	if v := os.Getenv("ARK_MODEL"); v != "" {
		c.AI.Model = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.QuoteCache.Redis.Addr = v
		c.QuoteCache.Redis.Enabled = true
	}

	return c, nil
}

// Validate checks structural configuration. Credentials are deliberately not
// validated here: the service answers in degraded mode without them.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.SearchCache.Capacity < 0 {
		return fmt.Errorf("search_cache.capacity cannot be negative")
	}
	if c.Chat.TransactionLimit < 0 {
		return fmt.Errorf("chat.transaction_limit cannot be negative")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when kafka is enabled")
	}
	if c.Kafka.Enabled && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required when kafka is enabled")
	}
	if c.Stocks.Stream.Enabled && c.Stocks.Stream.WebSocketURL == "" {
		return fmt.Errorf("stocks.stream.websocket_url is required when the stream is enabled")
	}
	return nil
}
