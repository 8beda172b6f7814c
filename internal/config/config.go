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
	Database DatabaseConfig
	Server   ServerConfig
	Admin    AdminConfig
	Auth     AuthConfig
}

type DatabaseConfig struct {
	Host              string
	Port              int
	User              string
	Password          string
	Name              string
	SSLMode           string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
	TrustedProxies []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
}

// AdminConfig is the single admin principal. All three fields are
// required; the process refuses to start without them rather than run
// with undefined security behavior.
type AdminConfig struct {
	Username     string
	PasswordHash string
	PasswordSalt string
}

type AuthConfig struct {
	TokenSecret          string
	TokenExpiry          time.Duration
	RateLimitMaxAttempts int
	RateLimitWindow      time.Duration
	SweepInterval        time.Duration
	CookieSecure         bool
	CookieSameSite       string
	DebugLogging         bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("ENV", "development")

	adminUsername := getEnv("ADMIN_USERNAME", "")
	adminPasswordHash := getEnv("ADMIN_PASSWORD_HASH", "")
	adminPasswordSalt := getEnv("ADMIN_PASSWORD_SALT", "")
	tokenSecret := getEnv("ADMIN_TOKEN_SECRET", "")

	if adminUsername == "" || adminPasswordHash == "" || adminPasswordSalt == "" {
		return nil, fmt.Errorf("ADMIN_USERNAME, ADMIN_PASSWORD_HASH and ADMIN_PASSWORD_SALT are required")
	}
	if tokenSecret == "" {
		return nil, fmt.Errorf("ADMIN_TOKEN_SECRET is required")
	}
	if err := validateTokenSecret(tokenSecret, env); err != nil {
		return nil, err
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:              getEnv("DB_HOST", "localhost"),
			Port:              getEnvAsInt("DB_PORT", 5432),
			User:              getEnv("DB_USER", "postgres"),
			Password:          getEnv("DB_PASSWORD", ""),
			Name:              getEnv("DB_NAME", "funny_yellow"),
			SSLMode:           getEnv("DB_SSLMODE", "disable"),
			MaxConns:          int32(getEnvAsInt("DB_MAX_CONNS", 10)),
			MinConns:          int32(getEnvAsInt("DB_MIN_CONNS", 2)),
			MaxConnLifetime:   getEnvAsDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
			MaxConnIdleTime:   getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 1*time.Minute),
			HealthCheckPeriod: getEnvAsDuration("DB_HEALTH_CHECK_PERIOD", 1*time.Minute),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            env,
			AllowedOrigins: parseCommaSeparated(getEnv("ALLOWED_ORIGINS", "")),
			TrustedProxies: parseCommaSeparated(getEnv("TRUSTED_PROXIES", "")),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Admin: AdminConfig{
			Username:     adminUsername,
			PasswordHash: adminPasswordHash,
			PasswordSalt: adminPasswordSalt,
		},
		Auth: AuthConfig{
			TokenSecret:          tokenSecret,
			TokenExpiry:          getEnvAsDuration("ADMIN_TOKEN_EXPIRY", 24*time.Hour),
			RateLimitMaxAttempts: getEnvAsInt("LOGIN_MAX_ATTEMPTS", 5),
			RateLimitWindow:      getEnvAsDuration("LOGIN_LOCKOUT_WINDOW", 15*time.Minute),
			SweepInterval:        getEnvAsDuration("LOGIN_SWEEP_INTERVAL", 1*time.Hour),
			CookieSecure:         env == "production",
			CookieSameSite:       getEnv("ADMIN_COOKIE_SAMESITE", "lax"),
			DebugLogging:         getEnvAsBool("AUTH_DEBUG_LOGGING", false),
		},
	}

	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	return cfg, nil
}

// validateTokenSecret enforces minimum strength for the signing secret.
// Rotating it invalidates every outstanding session token at once.
func validateTokenSecret(secret, env string) error {
	minLength := 16
	if env == "production" {
		minLength = 32
	}

	if len(secret) < minLength {
		return fmt.Errorf("ADMIN_TOKEN_SECRET must be at least %d characters in %s environment (got %d)",
			minLength, env, len(secret))
	}

	weakSecrets := []string{
		"secret", "test", "password", "12345", "changeme",
		"admin", "root", "default", "example",
	}
	secretLower := strings.ToLower(secret)
	for _, weak := range weakSecrets {
		if secretLower == weak {
			return fmt.Errorf("ADMIN_TOKEN_SECRET cannot be a common weak value")
		}
	}

	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
