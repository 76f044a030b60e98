package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	PlannerURL      string
	PlannerDisabled bool
	PlannerTimeout  time.Duration

	CityDBDriver        string
	CityDBDSN           string
	CitySeedPath        string
	CityRefreshSchedule string

	NATSURL     string
	NATSSubject string

	RateLimitPerMinute      int
	RateLimitExemptLoopback bool
	CORSAllowedOrigins      []string

	StaticDir string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}

	cfg.Port = Get("PORT", "3000")
	if p, err := strconv.Atoi(cfg.Port); err != nil || p <= 0 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}

	// The dashboard calls the planning endpoint this same process serves
	// unless pointed elsewhere.
	cfg.PlannerURL = Get("PLANNER_URL", "http://127.0.0.1:"+cfg.Port+"/api/plan-trip/")

	disabled, err := getBool("PLANNER_DISABLED", false)
	if err != nil {
		return nil, err
	}
	cfg.PlannerDisabled = disabled

	if v := os.Getenv("PLANNER_TIMEOUT_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("invalid PLANNER_TIMEOUT_MS: %q", v)
		}
		cfg.PlannerTimeout = time.Duration(ms) * time.Millisecond
	} else {
		cfg.PlannerTimeout = 10 * time.Second
	}

	cfg.CityDBDriver = strings.ToLower(strings.TrimSpace(os.Getenv("CITY_DB_DRIVER")))
	switch cfg.CityDBDriver {
	case "", "sqlite", "pgx":
	case "postgres":
		cfg.CityDBDriver = "pgx"
	default:
		return nil, fmt.Errorf("invalid CITY_DB_DRIVER: %q (want sqlite or pgx)", cfg.CityDBDriver)
	}
	cfg.CityDBDSN = firstNonEmpty(os.Getenv("CITY_DB_DSN"), os.Getenv("DATABASE_URL"), "data/cities.db")
	cfg.CitySeedPath = os.Getenv("CITY_SEED_PATH")
	cfg.CityRefreshSchedule = strings.TrimSpace(os.Getenv("CITY_REFRESH_SCHEDULE"))

	cfg.NATSURL = os.Getenv("NATS_URL")
	cfg.NATSSubject = Get("NATS_SUBJECT", "trips.planned")

	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %q", v)
		}
		cfg.RateLimitPerMinute = n
	} else {
		cfg.RateLimitPerMinute = 60
	}

	// Behind a reverse proxy on the same host every client is loopback;
	// turn this off there.
	exempt, err := getBool("RATE_LIMIT_EXEMPT_LOOPBACK", true)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitExemptLoopback = exempt

	cfg.CORSAllowedOrigins = splitList(Get("CORS_ALLOWED_ORIGINS", "*"))
	cfg.StaticDir = os.Getenv("STATIC_DIR")

	return cfg, nil
}

// Get returns the value of key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, def bool) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch v {
	case "":
		return def, nil
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid %s: %q", key, v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
