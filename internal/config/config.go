// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"

	"github.com/dingeldeiner/whitebook/internal/repo"
)

// dialTimeout bounds how long a load waits to reach the store.
const dialTimeout = 10 * time.Second

// Config holds all configuration values for the dashboard server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// DBDriver selects the listings store: "mysql" (MariaDB/MySQL, the
	// default) or "postgres".
	DBDriver string

	// Store connection parameters. Host, user, password and database name are
	// required; the port defaults to the driver's standard port.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// CacheTTL expires loaded snapshots after this long.
	// Zero keeps them for the process lifetime.
	CacheTTL time.Duration

	// RateLimitRPS and RateLimitBurst configure the process-wide request
	// limiter. A non-positive RPS disables it.
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first variable whose value cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", repo.DriverMySQL)),
	}

	switch cfg.DBDriver {
	case repo.DriverMySQL:
		cfg.DBPort = getEnv("DB_PORT", "3306")
	case repo.DriverPostgres:
		cfg.DBPort = getEnv("DB_PORT", "5432")
	default:
		return Config{}, fmt.Errorf("DB_DRIVER %q is not supported (want %s or %s)", cfg.DBDriver, repo.DriverMySQL, repo.DriverPostgres)
	}

	var missing []string
	for _, req := range []struct {
		key string
		dst *string
	}{
		{"DB_HOST", &cfg.DBHost},
		{"DB_USERNAME", &cfg.DBUser},
		{"DB_PASSWORD", &cfg.DBPassword},
		{"DB_NAME", &cfg.DBName},
	} {
		*req.dst = os.Getenv(req.key)
		if *req.dst == "" {
			missing = append(missing, req.key)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	var err error
	if cfg.CacheTTL, err = time.ParseDuration(getEnv("CACHE_TTL", "0s")); err != nil || cfg.CacheTTL < 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be a non-negative duration such as 30m, got %q", os.Getenv("CACHE_TTL"))
	}
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS must be a number, got %q", os.Getenv("RATE_LIMIT_RPS"))
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20")); err != nil || cfg.RateLimitBurst < 1 {
		return Config{}, fmt.Errorf("RATE_LIMIT_BURST must be a positive integer, got %q", os.Getenv("RATE_LIMIT_BURST"))
	}

	return cfg, nil
}

// DSN returns the connection string for DBDriver built from the DB_* values.
func (c Config) DSN() string {
	addr := net.JoinHostPort(c.DBHost, c.DBPort)
	if c.DBDriver == repo.DriverPostgres {
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.DBUser, c.DBPassword),
			Host:     addr,
			Path:     "/" + c.DBName,
			RawQuery: url.Values{"connect_timeout": {strconv.Itoa(int(dialTimeout.Seconds()))}}.Encode(),
		}
		return u.String()
	}

	mc := mysqldriver.NewConfig()
	mc.User = c.DBUser
	mc.Passwd = c.DBPassword
	mc.Net = "tcp"
	mc.Addr = addr
	mc.DBName = c.DBName
	mc.Timeout = dialTimeout
	return mc.FormatDSN()
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
