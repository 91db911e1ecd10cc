package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса (config.toml)
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Redis     RedisConfig     `toml:"redis"`
	Cache     CacheConfig     `toml:"cache"`
	Auth      AuthConfig      `toml:"auth"`
	Business  BusinessConfig  `toml:"business"`
	Messenger MessengerConfig `toml:"messenger"`
	Telegram  TelegramConfig  `toml:"telegram"`
	Kafka     KafkaConfig     `toml:"kafka"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
}

type CacheConfig struct {
	CatalogTTL  int `toml:"catalog_ttl"`  // секунды
	SettingsTTL int `toml:"settings_ttl"` // секунды
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	AdminRole string `toml:"admin_role"`
}

type BusinessConfig struct {
	Timezone string `toml:"timezone"`
}

// Location часовой пояс заведения (используется для срока оплаты)
func (b BusinessConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

type MessengerConfig struct {
	Enabled      bool     `toml:"enabled"`
	URL          string   `toml:"url"`
	ChannelToken string   `toml:"channel_token"`
	AdminUserIDs []string `toml:"admin_user_ids"`
	Timeout      int      `toml:"timeout"`
}

type TelegramConfig struct {
	Enabled     bool   `toml:"enabled"`
	URL         string `toml:"url"`
	BotToken    string `toml:"bot_token"`
	AdminChatID string `toml:"admin_chat_id"`
	Timeout     int    `toml:"timeout"`
}

type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 20
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "spa_booking_service"
	}
	if c.Cache.CatalogTTL == 0 {
		c.Cache.CatalogTTL = 300
	}
	if c.Cache.SettingsTTL == 0 {
		c.Cache.SettingsTTL = 60
	}
	if c.Auth.AdminRole == "" {
		c.Auth.AdminRole = "admin"
	}
	if c.Business.Timezone == "" {
		c.Business.Timezone = "Asia/Bangkok"
	}
	if c.Messenger.Timeout == 0 {
		c.Messenger.Timeout = 5
	}
	if c.Telegram.URL == "" {
		c.Telegram.URL = "https://api.telegram.org"
	}
	if c.Telegram.Timeout == 0 {
		c.Telegram.Timeout = 5
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "booking-events"
	}
	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 5
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var errs []error

	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.Database.User == "" {
		errs = append(errs, errors.New("database.user is required"))
	}
	if c.Database.DBName == "" {
		errs = append(errs, errors.New("database.dbname is required"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}
	if _, err := c.Business.Location(); err != nil {
		errs = append(errs, fmt.Errorf("business.timezone: %w", err))
	}
	if c.Redis.Enabled && c.Redis.URL == "" {
		errs = append(errs, errors.New("redis.url is required when redis is enabled"))
	}
	if c.Messenger.Enabled && (c.Messenger.URL == "" || c.Messenger.ChannelToken == "") {
		errs = append(errs, errors.New("messenger.url and messenger.channel_token are required when messenger is enabled"))
	}
	if c.Telegram.Enabled && (c.Telegram.BotToken == "" || c.Telegram.AdminChatID == "") {
		errs = append(errs, errors.New("telegram.bot_token and telegram.admin_chat_id are required when telegram is enabled"))
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("kafka.brokers is required when kafka is enabled"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
