package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Session
		ReadOnly
		RateLimit
	}

	HTTP struct {
		Port           int32
		Host           string
		GinMode        string   // debug, release or test
		TrustedProxies []string // Peers allowed to set X-Forwarded-For; none by default
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver   string // sqlite or postgres
		Path     string // SQLite file, ignored for postgres
		DSN      string // PostgreSQL connection string
		LogLevel string // silent, error, warn or info
	}
	Session struct {
		Lifetime      time.Duration
		Secret        string // Hex or raw bytes for CSRF; generated when empty
		SecureCookies bool   // Set to false for local dev without HTTPS
	}
	ReadOnly struct {
		Enabled bool // Reject every write request
	}
	RateLimit struct {
		PerSecond float64 // Form submissions per client per second; 0 disables
		Burst     int
	}
)

// Validate checks that the selected driver can be opened.
func (d Database) Validate() error {
	switch d.Driver {
	case DriverSQLite:
		if d.Path == "" {
			return fmt.Errorf("DATABASE_PATH is required for the %s driver", DriverSQLite)
		}
	case DriverPostgres:
		if d.DSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for the %s driver", DriverPostgres)
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", d.Driver)
	}
	return nil
}

// loadEnvFiles reads .env files without overriding variables that are
// already set by the runtime (e.g. Docker).
func loadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func NewConfig() *Config {
	loadEnvFiles()
	return newConfig(viper.New())
}

func newConfig(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("trusted_proxies", "")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_level", "warn")

	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("session_secret", "") // Auto-generated if empty
	v.SetDefault("secure_cookies", false)

	v.SetDefault("read_only", false)

	v.SetDefault("rate_limit_per_second", 2)
	v.SetDefault("rate_limit_burst", 10)

	return &Config{
		HTTP: HTTP{
			Port:           v.GetInt32("PORT"),
			Host:           v.GetString("HOST"),
			GinMode:        v.GetString("GIN_MODE"),
			TrustedProxies: splitList(v.GetString("TRUSTED_PROXIES")),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:   v.GetString("DATABASE_DRIVER"),
			Path:     v.GetString("DATABASE_PATH"),
			DSN:      v.GetString("DATABASE_DSN"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Session: Session{
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			Secret:        v.GetString("SESSION_SECRET"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
		},
		ReadOnly: ReadOnly{
			Enabled: v.GetBool("READ_ONLY"),
		},
		RateLimit: RateLimit{
			PerSecond: v.GetFloat64("RATE_LIMIT_PER_SECOND"),
			Burst:     v.GetInt("RATE_LIMIT_BURST"),
		},
	}
}

// splitList parses a comma-separated value, dropping blanks.
func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
