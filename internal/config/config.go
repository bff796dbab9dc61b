package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Драйверы хранилища
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config хранит все настройки приложения
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Grading   GradingConfig
	CORS      CORSConfig
	Metrics   MetricsConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port            string
	ReadTimeout     int `mapstructure:"read_timeout"`
	WriteTimeout    int `mapstructure:"write_timeout"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// LogLevel: уровень логгера GORM ("silent", "error", "warn", "info")
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig содержит настройки подключения к Redis.
// Redis используется только для ограничения частоты запросов и не обязателен.
type RedisConfig struct {
	Enabled bool

	// Mode: "single", "sentinel" или "cluster". По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: список адресов (хост:порт). Для 'single' используется первый.
	Addrs []string `mapstructure:"addrs"`

	// Addr используется, если Addrs пуст
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	MasterName string `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"` // мс
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"` // мс
}

// StorageConfig выбирает реализацию репозиториев
type StorageConfig struct {
	Driver         string
	AutoMigrate    bool   `mapstructure:"auto_migrate"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

// RateLimitConfig задаёт лимиты на запись (по IP в окне)
type RateLimitConfig struct {
	Enabled       bool
	WriteRequests int `mapstructure:"write_requests"`
	WindowSec     int `mapstructure:"window_sec"`
}

// Window возвращает окно ограничения
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSec) * time.Second
}

// GradingConfig содержит настройки внешнего сервиса оценки ответов.
// Пустой APIKey отключает POST /api/answers.
type GradingConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string
	BaseURL     string `mapstructure:"base_url"`
	MaxTokens   int    `mapstructure:"max_tokens"`
	Temperature float32
	TimeoutSec  int `mapstructure:"timeout_sec"`
}

// Enabled сообщает, настроена ли оценка ответов
func (g GradingConfig) Enabled() bool {
	return g.APIKey != ""
}

// CORSConfig содержит разрешённые источники
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// MetricsConfig управляет эндпоинтом /metrics
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// PostgresURL формирует URL подключения для golang-migrate
func (d *DatabaseConfig) PostgresURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.read_timeout", 10)
	vip.SetDefault("server.write_timeout", 30)
	vip.SetDefault("server.shutdown_timeout", 10)

	vip.SetDefault("database.host", "localhost")
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.log_level", "warn")

	vip.SetDefault("redis.enabled", false)
	vip.SetDefault("redis.mode", "single")
	vip.SetDefault("redis.addr", "localhost:6379")

	vip.SetDefault("storage.driver", StorageDriverPostgres)
	vip.SetDefault("storage.auto_migrate", true)
	vip.SetDefault("storage.migrations_path", "migrations")

	vip.SetDefault("rate_limit.enabled", false)
	vip.SetDefault("rate_limit.write_requests", 60)
	vip.SetDefault("rate_limit.window_sec", 60)

	vip.SetDefault("grading.model", "gpt-4o")
	vip.SetDefault("grading.max_tokens", 100)
	vip.SetDefault("grading.temperature", 1.0)
	vip.SetDefault("grading.timeout_sec", 30)

	vip.SetDefault("cors.allow_origins", []string{"*"})

	vip.SetDefault("metrics.enabled", true)
	vip.SetDefault("metrics.path", "/metrics")
}

func bindEnv(vip *viper.Viper) {
	// Server
	vip.BindEnv("server.port", "SERVER_PORT")

	// Database
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("database.log_level", "DATABASE_LOG_LEVEL")

	// Redis
	vip.BindEnv("redis.enabled", "REDIS_ENABLED")
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	// Storage
	vip.BindEnv("storage.driver", "STORAGE_DRIVER")
	vip.BindEnv("storage.auto_migrate", "STORAGE_AUTO_MIGRATE")
	vip.BindEnv("storage.migrations_path", "STORAGE_MIGRATIONS_PATH")

	// Rate limit
	vip.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	vip.BindEnv("rate_limit.write_requests", "RATE_LIMIT_WRITE_REQUESTS")
	vip.BindEnv("rate_limit.window_sec", "RATE_LIMIT_WINDOW_SEC")

	// Grading: OPENAI_KEY оставлен для совместимости с существующими окружениями
	vip.BindEnv("grading.api_key", "GRADING_API_KEY", "OPENAI_KEY")
	vip.BindEnv("grading.model", "GRADING_MODEL")
	vip.BindEnv("grading.base_url", "GRADING_BASE_URL")

	vip.BindEnv("cors.allow_origins", "CORS_ALLOW_ORIGINS")
	vip.BindEnv("metrics.enabled", "METRICS_ENABLED")
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New()

	setDefaults(vip)
	bindEnv(vip)

	if configPath != "" {
		vip.SetConfigFile(configPath)
		// Файл не обязателен: всё можно задать через окружение
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || os.IsNotExist(err) {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.normalize()

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Storage Driver: %s (auto migrate: %t)", cfg.Storage.Driver, cfg.Storage.AutoMigrate)
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Enabled: %t (mode: %s)", cfg.Redis.Enabled, cfg.Redis.Mode)
		log.Printf("Rate Limit Enabled: %t", cfg.RateLimit.Enabled)
		log.Printf("Grading Enabled: %t (model: %s)", cfg.Grading.Enabled(), cfg.Grading.Model)
		log.Printf("-----------------------------------------")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize приводит списки из переменных окружения ("a,b") к срезам
func (c *Config) normalize() {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	c.CORS.AllowOrigins = splitList(c.CORS.AllowOrigins)
	c.Redis.Addrs = splitList(c.Redis.Addrs)
}

func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unsupported storage driver %q (expected %q or %q)", c.Storage.Driver, StorageDriverPostgres, StorageDriverMemory)
	}

	if c.RateLimit.Enabled {
		if !c.Redis.Enabled {
			return fmt.Errorf("rate limiting requires redis (set REDIS_ENABLED=true)")
		}
		if c.RateLimit.WriteRequests <= 0 || c.RateLimit.WindowSec <= 0 {
			return fmt.Errorf("rate limit requests and window must be positive")
		}
	}

	if c.Grading.MaxTokens < 0 || c.Grading.TimeoutSec < 0 {
		return fmt.Errorf("grading max tokens and timeout must not be negative")
	}
	return nil
}
