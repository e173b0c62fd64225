// file: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Cache      CacheConfig
	Email      EmailConfig
	Cloudinary CloudinaryConfig
	Logging    LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL                 string
	MaxOpenConns        int
	MaxIdleConns        int
	ConnMaxLifetime     time.Duration
	ConnMaxIdleTime     time.Duration
	SlowQueryThreshold  time.Duration
	ConnectTimeout      time.Duration
	HealthCheckInterval time.Duration
	MigrationsPath      string
}

// AuthConfig holds token verification configuration.
// Token issuance is owned by the identity service; this core only verifies.
type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
}

// CacheConfig holds cache provider configuration
type CacheConfig struct {
	Provider   string // "memory" or "redis"
	RedisURL   string
	DefaultTTL time.Duration
}

// EmailConfig holds the SMTP collaborator configuration
type EmailConfig struct {
	Enabled     bool
	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
	FromAddress string
	FromName    string
}

// CloudinaryConfig holds attachment upload configuration
type CloudinaryConfig struct {
	CloudName      string
	APIKey         string
	APISecret      string
	UploadFolder   string
	MaxFileSize    int64
	AllowedFormats []string
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load reads configuration from the environment, applying
// environment-specific defaults the way production expects.
func Load() (*Config, error) {
	// .env is optional; real deployments use process environment
	_ = godotenv.Load()

	env := getEnv("GO_ENV", "development")

	cfg := &Config{
		Server:     loadServerConfig(env),
		Database:   loadDatabaseConfig(env),
		Auth:       loadAuthConfig(),
		Cache:      loadCacheConfig(),
		Email:      loadEmailConfig(),
		Cloudinary: loadCloudinaryConfig(),
		Logging:    loadLoggingConfig(env),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func loadServerConfig(env string) ServerConfig {
	return ServerConfig{
		Port:            getEnv("PORT", "8080"),
		Host:            getEnv("SERVER_HOST", "0.0.0.0"),
		Environment:     env,
		ReadTimeout:     getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		GracefulTimeout: getDuration("SERVER_GRACEFUL_TIMEOUT", 30*time.Second),
	}
}

func loadDatabaseConfig(env string) DatabaseConfig {
	cfg := DatabaseConfig{
		URL:                 getEnv("DATABASE_URL", ""),
		ConnMaxIdleTime:     getDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		ConnectTimeout:      getDuration("DB_CONNECT_TIMEOUT", 30*time.Second),
		HealthCheckInterval: getDuration("DB_HEALTH_CHECK_INTERVAL", 30*time.Second),
		MigrationsPath:      getEnv("DB_MIGRATIONS_PATH", "./migrations"),
	}

	// Pool sizing differs per environment unless overridden
	switch env {
	case "production":
		cfg.MaxOpenConns = getInt("DB_MAX_OPEN_CONNS", 50)
		cfg.MaxIdleConns = getInt("DB_MAX_IDLE_CONNS", 20)
		cfg.ConnMaxLifetime = getDuration("DB_CONN_MAX_LIFETIME", 15*time.Minute)
		cfg.SlowQueryThreshold = getDuration("DB_SLOW_QUERY_THRESHOLD", 200*time.Millisecond)
	case "staging":
		cfg.MaxOpenConns = getInt("DB_MAX_OPEN_CONNS", 25)
		cfg.MaxIdleConns = getInt("DB_MAX_IDLE_CONNS", 10)
		cfg.ConnMaxLifetime = getDuration("DB_CONN_MAX_LIFETIME", 10*time.Minute)
		cfg.SlowQueryThreshold = getDuration("DB_SLOW_QUERY_THRESHOLD", 100*time.Millisecond)
	default:
		cfg.MaxOpenConns = getInt("DB_MAX_OPEN_CONNS", 10)
		cfg.MaxIdleConns = getInt("DB_MAX_IDLE_CONNS", 5)
		cfg.ConnMaxLifetime = getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
		cfg.SlowQueryThreshold = getDuration("DB_SLOW_QUERY_THRESHOLD", 50*time.Millisecond)
	}

	if cfg.MaxIdleConns > cfg.MaxOpenConns {
		cfg.MaxIdleConns = cfg.MaxOpenConns
	}

	return cfg
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "greenloop"),
	}
}

func loadCacheConfig() CacheConfig {
	return CacheConfig{
		Provider:   getEnv("CACHE_PROVIDER", "memory"),
		RedisURL:   getEnv("REDIS_URL", ""),
		DefaultTTL: getDuration("CACHE_DEFAULT_TTL", 5*time.Minute),
	}
}

func loadEmailConfig() EmailConfig {
	return EmailConfig{
		Enabled:     getBool("EMAIL_ENABLED", false),
		SMTPHost:    getEnv("SMTP_HOST", ""),
		SMTPPort:    getInt("SMTP_PORT", 587),
		SMTPUser:    getEnv("SMTP_USER", ""),
		SMTPPass:    getEnv("SMTP_PASS", ""),
		FromAddress: getEnv("EMAIL_FROM_ADDRESS", "no-reply@greenloop.io"),
		FromName:    getEnv("EMAIL_FROM_NAME", "GreenLoop"),
	}
}

func loadCloudinaryConfig() CloudinaryConfig {
	return CloudinaryConfig{
		CloudName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		APIKey:         getEnv("CLOUDINARY_API_KEY", ""),
		APISecret:      getEnv("CLOUDINARY_API_SECRET", ""),
		UploadFolder:   getEnv("CLOUDINARY_UPLOAD_FOLDER", "greenloop/actions"),
		MaxFileSize:    getInt64("CLOUDINARY_MAX_FILE_SIZE", 5*1024*1024),
		AllowedFormats: getSlice("CLOUDINARY_ALLOWED_FORMATS", "jpg,jpeg,png,webp"),
	}
}

func loadLoggingConfig(env string) LoggingConfig {
	format := "json"
	level := "info"
	if env == "development" {
		format = "console"
		level = "debug"
	}
	return LoggingConfig{
		Level:  getEnv("LOG_LEVEL", level),
		Format: getEnv("LOG_FORMAT", format),
	}
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Server.Environment == "production" && c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if c.Cache.Provider == "redis" && c.Cache.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required when CACHE_PROVIDER=redis")
	}
	return nil
}

// IsProduction reports whether the app runs with production settings
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// ===============================
// ENV HELPERS
// ===============================

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getSlice(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
