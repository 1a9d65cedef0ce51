// Package config loads and validates service configuration via Viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Crawler  CrawlerConfig  `mapstructure:"crawler"`
	Extract  ExtractConfig  `mapstructure:"extract"`
	Worker   WorkerConfig   `mapstructure:"worker"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// TelegramConfig identifies the bot and its single authorized operator.
type TelegramConfig struct {
	BotToken         string `mapstructure:"bot_token"`
	WebhookSecret    string `mapstructure:"webhook_secret"`
	AuthorizedUserID int64  `mapstructure:"authorized_user_id"`
	MaxFileBytes     int64  `mapstructure:"max_file_bytes"`
}

// OpenAIConfig configures the completion collaborator.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// CrawlerConfig governs fetch and crawl behavior.
type CrawlerConfig struct {
	UserAgent      string `mapstructure:"user_agent"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxDepth       int    `mapstructure:"max_depth"`
	DefaultDepth   int    `mapstructure:"default_depth"`
	RenderEnabled  bool   `mapstructure:"render_enabled"`
	RenderParallel int    `mapstructure:"render_parallel"`
}

// ExtractConfig governs document extraction behavior.
type ExtractConfig struct {
	OCREnabled bool `mapstructure:"ocr_enabled"`
}

// WorkerConfig sizes the event queue and its consumers.
type WorkerConfig struct {
	Concurrency int `mapstructure:"concurrency"`
	QueueDepth  int `mapstructure:"queue_depth"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// FetchTimeout returns the per-page fetch timeout as a duration.
func (c CrawlerConfig) FetchTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SHADOWBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("telegram.max_file_bytes", 20*1024*1024)
	v.SetDefault("openai.model", "gpt-3.5-turbo")
	v.SetDefault("crawler.user_agent", "Mozilla/5.0 (compatible; shadowbot/1.0)")
	v.SetDefault("crawler.timeout_seconds", 10)
	v.SetDefault("crawler.max_depth", 3)
	v.SetDefault("crawler.default_depth", 2)
	v.SetDefault("crawler.render_enabled", false)
	v.SetDefault("crawler.render_parallel", 1)
	v.SetDefault("extract.ocr_enabled", true)
	v.SetDefault("worker.concurrency", 4)
	v.SetDefault("worker.queue_depth", 64)
	v.SetDefault("logging.development", false)
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return errors.New("telegram.bot_token is required")
	}
	if c.Telegram.AuthorizedUserID == 0 {
		return errors.New("telegram.authorized_user_id is required")
	}
	if c.OpenAI.APIKey == "" {
		return errors.New("openai.api_key is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Crawler.TimeoutSeconds <= 0 {
		return fmt.Errorf("crawler.timeout_seconds must be positive: %d", c.Crawler.TimeoutSeconds)
	}
	if c.Crawler.MaxDepth < 1 {
		return fmt.Errorf("crawler.max_depth must be at least 1: %d", c.Crawler.MaxDepth)
	}
	if c.Crawler.DefaultDepth < 1 || c.Crawler.DefaultDepth > c.Crawler.MaxDepth {
		return fmt.Errorf("crawler.default_depth must be within [1, max_depth]: %d", c.Crawler.DefaultDepth)
	}
	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("worker.concurrency must be at least 1: %d", c.Worker.Concurrency)
	}
	if c.Worker.QueueDepth < 1 {
		return fmt.Errorf("worker.queue_depth must be at least 1: %d", c.Worker.QueueDepth)
	}
	return nil
}
