package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type AppCfg struct{ Env, Port, BaseURL, LogLevel string }
type RedisCfg struct {
	Addr string
	TTL  time.Duration
}

type DBCfg struct {
	Driver  string
	DSN     string
	Migrate bool
	Seed    bool
}

type SecurityCfg struct {
	RateLimitPerMin int
	AllowedOrigins  []string
}

// PagingCfg bounds collection pages. MaxSize never exceeds 50.
type PagingCfg struct {
	DefaultSize int
	MaxSize     int
}

type Cfg struct {
	App    AppCfg
	DB     DBCfg
	Redis  RedisCfg
	Sec    SecurityCfg
	Paging PagingCfg
}

// Load reads .env (if present) and the environment, and exits on invalid
// settings.
func Load() Cfg {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env")
	}

	v := viper.New()
	v.AutomaticEnv()
	cfg, err := load(v)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

func load(v *viper.Viper) (Cfg, error) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_BASE_URL", "http://localhost:8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", DriverPostgres)
	v.SetDefault("DB_MIGRATE", true)
	v.SetDefault("DB_SEED", false)
	v.SetDefault("REDIS_TTL", "5m")
	v.SetDefault("RATE_LIMIT_PER_MIN", 300)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("PAGE_SIZE_DEFAULT", 10)
	v.SetDefault("PAGE_SIZE_MAX", 20)

	cfg := Cfg{
		App: AppCfg{
			Env:      v.GetString("APP_ENV"),
			Port:     v.GetString("APP_PORT"),
			BaseURL:  strings.TrimSuffix(v.GetString("APP_BASE_URL"), "/"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBCfg{
			Driver:  strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
			DSN:     v.GetString("DB_DSN"),
			Migrate: v.GetBool("DB_MIGRATE"),
			Seed:    v.GetBool("DB_SEED"),
		},
		Redis: RedisCfg{
			Addr: v.GetString("REDIS_ADDR"),
			TTL:  v.GetDuration("REDIS_TTL"),
		},
		Sec: SecurityCfg{
			RateLimitPerMin: v.GetInt("RATE_LIMIT_PER_MIN"),
			AllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Paging: PagingCfg{
			DefaultSize: v.GetInt("PAGE_SIZE_DEFAULT"),
			MaxSize:     v.GetInt("PAGE_SIZE_MAX"),
		},
	}

	// Fail fast on required settings
	base, err := url.Parse(cfg.App.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return Cfg{}, fmt.Errorf("APP_BASE_URL must be an absolute URL, got %q", cfg.App.BaseURL)
	}
	switch cfg.DB.Driver {
	case DriverPostgres:
		if cfg.DB.DSN == "" {
			return Cfg{}, errors.New("DB_DSN is required for the postgres store")
		}
	case DriverMemory:
	default:
		return Cfg{}, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMemory, cfg.DB.Driver)
	}
	if cfg.Redis.TTL <= 0 {
		return Cfg{}, errors.New("REDIS_TTL must be positive")
	}
	if cfg.Paging.DefaultSize < 1 || cfg.Paging.MaxSize < 1 {
		return Cfg{}, errors.New("PAGE_SIZE_DEFAULT and PAGE_SIZE_MAX must be positive")
	}
	if cfg.Paging.MaxSize > 50 {
		log.Warn().Int("requested", cfg.Paging.MaxSize).Msg("PAGE_SIZE_MAX capped at 50")
		cfg.Paging.MaxSize = 50
	}
	cfg.Paging.DefaultSize = min(cfg.Paging.DefaultSize, cfg.Paging.MaxSize)

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
