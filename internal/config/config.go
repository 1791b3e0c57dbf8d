// config реализует конфигурацию comment-router: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	GRPC     GRPCConfig    `yaml:"grpc"`
	Ops      OpsConfig     `yaml:"ops"`
	DB       DBConfig      `yaml:"db"`
	Redis    RedisConfig   `yaml:"redis"`
	Auth     AuthConfig    `yaml:"auth"`
	Limits   LimitsConfig  `yaml:"limits"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// HTTPConfig — публичный HTTP API (пермалинки, ответы, новые комментарии).
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	// BasePath — префикс маршрутов, например "/api"; пустой — маршруты на корне.
	BasePath string `yaml:"base_path" env:"HTTP_BASE_PATH" env-default:""`
}

// GRPCConfig — сетевые настройки gRPC-сервера.
type GRPCConfig struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50055"`
}

// OpsConfig — служебный HTTP (health/metrics).
type OpsConfig struct {
	Host string `yaml:"host" env:"OPS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"OPS_PORT" env-default:"50085"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// Addr возвращает адрес в формате host:port.
func (g GRPCConfig) Addr() string {
	return net.JoinHostPort(g.Host, g.Port)
}

// Addr возвращает адрес в формате host:port.
func (o OpsConfig) Addr() string {
	return net.JoinHostPort(o.Host, o.Port)
}

// DBConfig — настройки подключения к MongoDB.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// RedisConfig — хранилище истории просмотров (redis://:pass@host:6379/0).
type RedisConfig struct {
	URL    string `yaml:"url"    env:"REDIS_URL"    env-required:"true"`
	Prefix string `yaml:"prefix" env:"REDIS_PREFIX" env-default:"history:"`
}

// AuthConfig — проверка bearer-токенов и права анонимного пользователя.
type AuthConfig struct {
	JWTSecret string   `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	Issuer    string   `yaml:"issuer"     env:"JWT_ISSUER"   env-default:"auth-service"`
	Audience  []string `yaml:"audience"   env:"JWT_AUDIENCE" env-separator:","`
	// AnonymousPermissions — права пользователя без токена.
	AnonymousPermissions []string `yaml:"anonymous_permissions" env:"ANONYMOUS_PERMISSIONS" env-separator:"," env-default:"access content,access comments"`
}

// LimitsConfig — ограничения запросов.
type LimitsConfig struct {
	// NewLinksBatch — сколько сущностей обрабатывается за один запрос новых комментариев.
	NewLinksBatch int `yaml:"new_links_batch" env:"NEW_LINKS_BATCH" env-default:"100"`
	// NewWindow — комментарии старше этого окна не считаются новыми.
	NewWindow time.Duration `yaml:"new_window" env:"NEW_WINDOW" env-default:"720h"`
	// MaxBody — максимальный размер тела комментария в байтах.
	MaxBody int `yaml:"max_body" env:"MAX_BODY" env-default:"65536"`
}

// TimeoutConfig — сервисные таймауты (общий дедлайн обработки запроса).
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// Поверх значений из YAML накладываются ENV-переменные.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	if path == "" {
		if _, err := os.Stat("local.yaml"); err == nil {
			path = "local.yaml"
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", path, err)
		}

		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("redis.url is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}

	if c.Limits.NewLinksBatch <= 0 {
		return fmt.Errorf("limits.new_links_batch must be > 0")
	}

	if c.Limits.NewLinksBatch > 1000 {
		return fmt.Errorf("limits.new_links_batch is too large (<= 1000)")
	}

	if c.Limits.NewWindow <= 0 {
		return fmt.Errorf("limits.new_window must be > 0")
	}

	if c.Limits.MaxBody <= 0 {
		return fmt.Errorf("limits.max_body must be > 0")
	}

	if c.Timeouts.Service < 0 {
		return fmt.Errorf("timeouts.service must be >= 0")
	}

	return nil
}
