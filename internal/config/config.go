package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "5000"
	defaultDatabaseURL     = "brightline.db"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultJWTExpiresIn    = "168h"
	defaultBaseURL         = "http://localhost:5000"
	defaultFrontendURL     = "http://localhost:3000"
	defaultAdminEmail      = "admin@brightline-electric.com"
	defaultMaxFileSize     = 5 * 1024 * 1024
	defaultUploadDir       = "./uploads"
	defaultRateLimitWindow = "15m"
	defaultRateLimitMax    = 100
	defaultMailSubject     = "mail.send"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Upload    UploadConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Mail      MailConfig
	Log       LogConfig
}

type AppConfig struct {
	Env         string
	Port        string
	BaseURL     string
	FrontendURL string
	AdminEmail  string
	// CORSOrigins is a comma-separated list added to the built-in dev origins.
	CORSOrigins string
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

type UploadConfig struct {
	MaxFileSize int64
	Dir         string
}

// StorageConfig selects where uploaded files end up: "local" or "minio".
type StorageConfig struct {
	Type      string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

type RateLimitConfig struct {
	Window time.Duration
	Max    int
}

// RedisConfig is optional; an empty URL keeps rate limiting in memory.
type RedisConfig struct {
	URL string
}

// MailConfig is optional; an empty NATS URL logs outgoing mail instead of queueing it.
type MailConfig struct {
	NATSURL string
	Subject string
}

type LogConfig struct {
	Level      string
	Format     string
	Output     string
	FilePath   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("NODE_ENV"))
	}
	if appEnv == "" {
		appEnv = "development"
	}

	cfg := &Config{
		App: AppConfig{
			Env:         strings.ToLower(appEnv),
			Port:        getEnv("PORT", defaultPort),
			BaseURL:     strings.TrimSuffix(getEnv("BASE_URL", defaultBaseURL), "/"),
			FrontendURL: strings.TrimSuffix(getEnv("FRONTEND_URL", defaultFrontendURL), "/"),
			AdminEmail:  getEnv("ADMIN_EMAIL", defaultAdminEmail),
			CORSOrigins: os.Getenv("CORS_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", defaultDatabaseURL),
		},
		Upload: UploadConfig{
			Dir: getEnv("UPLOAD_DIR", defaultUploadDir),
		},
		Storage: StorageConfig{
			Type:      strings.ToLower(getEnv("STORAGE_TYPE", "local")),
			Endpoint:  getEnv("S3_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
			Bucket:    getEnv("S3_BUCKET", "brightline-uploads"),
			UseSSL:    parseBoolEnv("S3_USE_SSL", "false"),
			PublicURL: strings.TrimSuffix(getEnv("S3_PUBLIC_URL", ""), "/"),
		},
		Redis: RedisConfig{
			URL: strings.TrimSpace(os.Getenv("REDIS_URL")),
		},
		Mail: MailConfig{
			NATSURL: strings.TrimSpace(os.Getenv("NATS_URL")),
			Subject: getEnv("MAIL_SUBJECT", defaultMailSubject),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Format:   getEnv("LOG_FORMAT", "json"),
			Output:   getEnv("LOG_OUTPUT", "stdout"),
			FilePath: getEnv("LOG_FILE", "logs/app.log"),
			Compress: parseBoolEnv("LOG_COMPRESS", "true"),
		},
	}
	cfg.JWT.Secret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	if cfg.JWT.ExpiresIn, err = parseDurationEnv("JWT_EXPIRES_IN", defaultJWTExpiresIn); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Window, err = parseDurationEnv("RATE_LIMIT_WINDOW", defaultRateLimitWindow); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Max, err = parseIntEnv("RATE_LIMIT_MAX", defaultRateLimitMax); err != nil {
		return nil, err
	}
	maxFileSize, err := parseIntEnv("MAX_FILE_SIZE", defaultMaxFileSize)
	if err != nil {
		return nil, err
	}
	cfg.Upload.MaxFileSize = int64(maxFileSize)
	if cfg.Log.MaxSize, err = parseIntEnv("LOG_MAX_SIZE", 100); err != nil {
		return nil, err
	}
	if cfg.Log.MaxBackups, err = parseIntEnv("LOG_MAX_BACKUPS", 5); err != nil {
		return nil, err
	}
	if cfg.Log.MaxAge, err = parseIntEnv("LOG_MAX_AGE", 30); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.JWT.ExpiresIn <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN must be > 0")
	}
	if cfg.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be > 0")
	}
	if cfg.RateLimit.Max <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be > 0")
	}
	if cfg.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be > 0")
	}
	if cfg.Storage.Type != "local" && cfg.Storage.Type != "minio" {
		return fmt.Errorf("STORAGE_TYPE must be one of: local, minio")
	}

	if cfg.IsProduction() {
		if isEmptyOrDefault(cfg.JWT.Secret, defaultJWTSecret) {
			return fmt.Errorf("in production JWT_SECRET must be set and not default")
		}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return isProdLike(c.App.Env)
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development" || c.App.Env == "dev"
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
