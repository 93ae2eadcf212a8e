package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"airport_lookup/internal/domain"
)

const DefaultSourceURL = "https://davidmegginson.github.io/ourairports-data/airports.csv"

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	SourceURL      string
	SourceRPS      int
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	CacheTTL       time.Duration
	RequestTimeout time.Duration
	Info           domain.Info
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-integer env value")
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-numeric env value")
		}
		return def
	}
	atob := func(k string, def bool) bool {
		if v := os.Getenv(k); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-boolean env value")
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		SourceURL:      env("AIRPORTS_SOURCE_URL", DefaultSourceURL),
		SourceRPS:      atoi("SOURCE_RPS", 5),
		RedisAddr:      env("REDIS_ADDR", ""),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		Info: domain.Info{
			ID:          env("INFO_ID", "airports"),
			DisplayName: env("INFO_DISPLAY_NAME", "Airports"),
			Type:        env("INFO_TYPE", "cluster"),
			Center: domain.InfoCenter{
				Latitude:  atof("INFO_CENTER_LAT", 0),
				Longitude: atof("INFO_CENTER_LON", 0),
			},
			Zoom:    atoi("INFO_ZOOM", 1),
			MaxZoom: atoi("INFO_MAX_ZOOM", 1),
			Visible: atob("INFO_VISIBLE", true),
			Scope:   env("INFO_SCOPE", "all"),
		},
	}
	if c.RedisAddr == "" {
		log.Info().Msg("REDIS_ADDR is empty; query cache disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
