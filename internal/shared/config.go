package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	MySQLDSN       string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	JWTSecret      string
	IdentityBase   string
	IdentityKey    string
	Workers        int
	PageSize       int
	CacheTTL       time.Duration
	ContactPerHour int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ":9100"),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/dora?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisPass:      env("REDIS_PASSWORD", ""),
		JWTSecret:      env("AUTH_JWT_SECRET", ""),
		IdentityBase:   env("IDENTITY_BASE_URL", "https://auth.doraparadise.in"),
		IdentityKey:    env("IDENTITY_SERVICE_KEY", ""),
		Workers:        atoi("PROVISION_WORKERS", 8),
		PageSize:       atoi("PROVISION_PAGE_SIZE", 50),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		ContactPerHour: atoi("CONTACT_RATE_PER_HOUR", 3),
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("AUTH_JWT_SECRET is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
