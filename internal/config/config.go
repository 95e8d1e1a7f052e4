// Package config собирает настройки сервиса: значения по умолчанию,
// затем необязательный YAML-файл, затем переменные окружения.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type HTTP struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
}

type Storage struct {
	Driver string `yaml:"driver"`
}

type Mongo struct {
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// RateLimit лимит запросов с одного клиента; RequestsPerMinute <= 0 отключает лимит
type RateLimit struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	Burst             int `yaml:"burst"`
}

// Pipeline конфигурация цепочки HTTP middleware
type Pipeline struct {
	SecurityHeaders bool                 `yaml:"security_headers"`
	Compression     bool                 `yaml:"compression"`
	AllowedOrigins  []string             `yaml:"allowed_origins"`
	RateLimits      map[string]RateLimit `yaml:"rate_limits"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Static struct {
	ImagesDir string `yaml:"images_dir"`
}

type Config struct {
	HTTP     HTTP     `yaml:"http"`
	Storage  Storage  `yaml:"storage"`
	Mongo    Mongo    `yaml:"mongo"`
	Pipeline Pipeline `yaml:"pipeline"`
	Log      Log      `yaml:"log"`
	Static   Static   `yaml:"static"`
}

// Ключи RateLimits, которые понимает HTTP-слой
const (
	RouteDefault      = "default"
	RouteSearch       = "search"
	RouteOrders       = "orders"
	RouteLessonsWrite = "lessons_write"
)

// Default возвращает базовую конфигурацию
func Default() Config {
	return Config{
		HTTP: HTTP{
			Addr:            ":3000",
			ShutdownTimeout: 5 * time.Second,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
		},
		Storage: Storage{Driver: DriverMongo},
		Mongo: Mongo{
			URI:            "mongodb://localhost:27017",
			Database:       "coursework",
			ConnectTimeout: 10 * time.Second,
		},
		Pipeline: Pipeline{
			SecurityHeaders: true,
			Compression:     true,
			RateLimits: map[string]RateLimit{
				RouteDefault: {RequestsPerMinute: 300, Burst: 50},
				RouteSearch:  {RequestsPerMinute: 120, Burst: 20},
				RouteOrders:  {RequestsPerMinute: 30, Burst: 5},
			},
		},
		Log: Log{Level: "info", Format: "json"},
	}
}

// Load читает YAML по пути path поверх Default и применяет переменные окружения.
// Пустой путь или отсутствующий файл не являются ошибкой.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Addr = ":" + v
	}
	cfg.HTTP.Addr = getenv("HTTP_ADDR", cfg.HTTP.Addr)
	cfg.Storage.Driver = getenv("STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Mongo.URI = getenv("MONGODB_URI", cfg.Mongo.URI)
	cfg.Mongo.Database = getenv("DB_NAME", cfg.Mongo.Database)
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Pipeline.AllowedOrigins = splitCSV(v)
	}
	cfg.Log.Level = getenv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getenv("LOG_FORMAT", cfg.Log.Format)
	cfg.Static.ImagesDir = getenv("IMAGES_DIR", cfg.Static.ImagesDir)
}

// Validate проверяет значения, которые нельзя молча заменить дефолтом
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return errors.New("mongo.uri and mongo.database are required for the mongo driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	for _, origin := range c.Pipeline.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("allowed origin %q must be * or start with http:// or https://", origin)
		}
	}
	for route, rl := range c.Pipeline.RateLimits {
		if rl.RequestsPerMinute > 0 && rl.Burst < 0 {
			return fmt.Errorf("rate limit %q: burst must not be negative", route)
		}
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
