package config

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих значения из файла
const EnvPrefix = "PETCARE"

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server" envconfig:"server"`
	Database    DatabaseConfig    `toml:"database" envconfig:"database"`
	Logs        LogsConfig        `toml:"logs" envconfig:"logs"`
	Metrics     MetricsConfig     `toml:"metrics" envconfig:"metrics"`
	PetRegistry PetRegistryConfig `toml:"pet_registry" envconfig:"pet_registry"`
	Redis       RedisConfig       `toml:"redis" envconfig:"redis"`
	Scheduling  SchedulingConfig  `toml:"scheduling" envconfig:"scheduling"`
	RateLimit   RateLimitConfig   `toml:"rate_limit" envconfig:"rate_limit"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"http_port"`
	ReadTimeout     int `toml:"read_timeout" envconfig:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout" envconfig:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout" envconfig:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout" envconfig:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" envconfig:"host"`
	Port            int    `toml:"port" envconfig:"port"`
	User            string `toml:"user" envconfig:"user"`
	Password        string `toml:"password" envconfig:"password"`
	DBName          string `toml:"dbname" envconfig:"dbname"`
	SSLMode         string `toml:"sslmode" envconfig:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" envconfig:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns" envconfig:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" envconfig:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file" envconfig:"file"`
	Level string `toml:"level" envconfig:"level"`
}

// MetricsConfig параметры Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" envconfig:"enabled"`
	Path        string `toml:"path" envconfig:"path"`
	ServiceName string `toml:"service_name" envconfig:"service_name"`
}

// PetRegistryConfig параметры клиента реестра питомцев (таймаут в секундах)
type PetRegistryConfig struct {
	URL     string `toml:"url" envconfig:"url"`
	Timeout int    `toml:"timeout" envconfig:"timeout"`
}

// RedisConfig параметры блокировок записи к специалисту
type RedisConfig struct {
	Enabled        bool   `toml:"enabled" envconfig:"enabled"`
	Addr           string `toml:"addr" envconfig:"addr"`
	Password       string `toml:"password" envconfig:"password"`
	DB             int    `toml:"db" envconfig:"db"`
	LockTTLSeconds int    `toml:"lock_ttl_seconds" envconfig:"lock_ttl_seconds"`
}

// LockTTL время жизни блокировки
func (c RedisConfig) LockTTL() time.Duration {
	return time.Duration(c.LockTTLSeconds) * time.Second
}

// SchedulingConfig параметры расчета слотов
type SchedulingConfig struct {
	DefaultStepMinutes int    `toml:"default_step_minutes" envconfig:"default_step_minutes"`
	DayLocation        string `toml:"day_location" envconfig:"day_location"`
}

// Location часовой пояс, в котором определяются границы дня
func (c SchedulingConfig) Location() (*time.Location, error) {
	if c.DayLocation == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.DayLocation)
}

// RateLimitConfig параметры ограничения частоты запросов на клиента
// TrustedProxies - адреса или подсети прокси, которым доверяется X-Forwarded-For.
// IdleTTL - через сколько секунд без запросов лимитер клиента удаляется.
type RateLimitConfig struct {
	Enabled        bool     `toml:"enabled" envconfig:"enabled"`
	RPS            float64  `toml:"rps" envconfig:"rps"`
	Burst          int      `toml:"burst" envconfig:"burst"`
	TrustedProxies []string `toml:"trusted_proxies" envconfig:"trusted_proxies"`
	IdleTTL        int      `toml:"idle_ttl" envconfig:"idle_ttl"`
}

// Load читает конфигурацию из TOML файла и применяет переопределения из окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to apply environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc-petcareservice",
		},
		PetRegistry: PetRegistryConfig{Timeout: 5},
		Redis: RedisConfig{
			Addr:           "localhost:6379",
			LockTTLSeconds: 10,
		},
		Scheduling: SchedulingConfig{
			DefaultStepMinutes: 15,
			DayLocation:        "UTC",
		},
		RateLimit: RateLimitConfig{
			RPS:     20,
			Burst:   40,
			IdleTTL: 600,
		},
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port must be in 1..65535, got %d", c.Server.HTTPPort))
	}
	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.Database.Port <= 0 {
		errs = append(errs, fmt.Errorf("database.port must be positive, got %d", c.Database.Port))
	}
	if c.Database.DBName == "" {
		errs = append(errs, errors.New("database.dbname is required"))
	}
	if c.PetRegistry.URL == "" {
		errs = append(errs, errors.New("pet_registry.url is required"))
	}
	if c.PetRegistry.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("pet_registry.timeout must be positive, got %d", c.PetRegistry.Timeout))
	}
	if c.Redis.Enabled && c.Redis.LockTTLSeconds <= 0 {
		errs = append(errs, fmt.Errorf("redis.lock_ttl_seconds must be positive, got %d", c.Redis.LockTTLSeconds))
	}
	if c.Scheduling.DefaultStepMinutes < 1 || c.Scheduling.DefaultStepMinutes > 240 {
		errs = append(errs, fmt.Errorf("scheduling.default_step_minutes must be in 1..240, got %d", c.Scheduling.DefaultStepMinutes))
	}
	if _, err := c.Scheduling.Location(); err != nil {
		errs = append(errs, fmt.Errorf("scheduling.day_location: %w", err))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, errors.New("rate_limit.rps and rate_limit.burst must be positive"))
	}
	if c.RateLimit.IdleTTL < 0 {
		errs = append(errs, errors.New("rate_limit.idle_ttl must not be negative"))
	}
	for _, proxy := range c.RateLimit.TrustedProxies {
		if !isAddrOrPrefix(proxy) {
			errs = append(errs, fmt.Errorf("rate_limit.trusted_proxies: invalid address %q", proxy))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func isAddrOrPrefix(value string) bool {
	value = strings.TrimSpace(value)
	if _, err := netip.ParsePrefix(value); err == nil {
		return true
	}
	_, err := netip.ParseAddr(value)
	return err == nil
}
