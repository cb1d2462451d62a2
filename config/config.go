package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

type BookingPolicy string

const (
	// PolicyObserved accepts every well-formed booking and never re-checks a slot on confirm.
	PolicyObserved BookingPolicy = "observed"
	// PolicyStrict enforces capacity, location and one confirmed booking per table slot.
	PolicyStrict BookingPolicy = "strict"
)

const (
	defaultPort            = "8080"
	defaultQueryTimeout    = 5 * time.Second
	defaultMaxOpenConns    = 10
	defaultSessionTTL      = 7 * 24 * time.Hour
	defaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	Port            string
	DatabaseURL     string
	SessionSecret   []byte
	SessionTTL      time.Duration
	CookieSecure    bool
	QueryTimeout    time.Duration
	MaxOpenConns    int
	BookingPolicy   BookingPolicy
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads an optional .env file and then the process environment.
// Every missing or malformed variable is reported in one error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (*Config, error) {
	var result *multierror.Error

	cfg := &Config{
		Port:          getenv("PORT"),
		DatabaseURL:   getenv("DATABASE_URL"),
		LogLevel:      getenv("LOG_LEVEL"),
		LogFormat:     strings.ToLower(getenv("LOG_FORMAT")),
		BookingPolicy: BookingPolicy(strings.ToLower(getenv("BOOKING_POLICY"))),
	}

	if cfg.DatabaseURL == "" {
		result = multierror.Append(result, errors.New("DATABASE_URL is required"))
	}
	secret := getenv("SESSION_SECRET")
	if secret == "" {
		result = multierror.Append(result, errors.New("SESSION_SECRET is required"))
	}
	cfg.SessionSecret = []byte(secret)

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	switch cfg.BookingPolicy {
	case "":
		cfg.BookingPolicy = PolicyObserved
	case PolicyObserved, PolicyStrict:
	default:
		result = multierror.Append(result, fmt.Errorf("BOOKING_POLICY must be %q or %q, got %q", PolicyObserved, PolicyStrict, cfg.BookingPolicy))
	}

	var err error
	if cfg.QueryTimeout, err = durationVar(getenv, "DB_QUERY_TIMEOUT", defaultQueryTimeout); err != nil {
		result = multierror.Append(result, err)
	}
	if cfg.SessionTTL, err = durationVar(getenv, "SESSION_TTL", defaultSessionTTL); err != nil {
		result = multierror.Append(result, err)
	}
	if cfg.ShutdownTimeout, err = durationVar(getenv, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout); err != nil {
		result = multierror.Append(result, err)
	}

	cfg.MaxOpenConns = defaultMaxOpenConns
	if v := getenv("DB_MAX_OPEN_CONNS"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n < 1 {
			result = multierror.Append(result, fmt.Errorf("DB_MAX_OPEN_CONNS must be a positive integer, got %q", v))
		} else {
			cfg.MaxOpenConns = n
		}
	}

	if v := getenv("COOKIE_SECURE"); v != "" {
		b, convErr := strconv.ParseBool(v)
		if convErr != nil {
			result = multierror.Append(result, fmt.Errorf("COOKIE_SECURE must be a boolean, got %q", v))
		}
		cfg.CookieSecure = b
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func durationVar(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	return d, nil
}
