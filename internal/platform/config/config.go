package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr               string
	DataDir            string
	DatabaseURL        string
	FrontendDir        string
	Environment        string
	AdminPassword      string
	JWTSecret          string
	DataEncryptionKey  string
	BackupEnabled      bool
	BackupInterval     time.Duration
	BackupMaxSlots     int
	BackupReminderDays int
	MaxBodyBytes       int64
	RateLimitPerMinute int
	MetricsEnabled     bool
}

// Load reads configuration from the environment, after loading a local
// .env file when one exists.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		DataDir:            getEnv("DATA_DIR", "data"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		FrontendDir:        getEnv("FRONTEND_DIR", "frontend/dist"),
		Environment:        getEnv("APP_ENV", "development"),
		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		DataEncryptionKey:  getEnv("DATA_ENCRYPTION_KEY", ""),
		BackupEnabled:      getEnvBool("BACKUP_ENABLED", false),
		BackupInterval:     time.Duration(getEnvInt("BACKUP_INTERVAL_MINUTES", 30)) * time.Minute,
		BackupMaxSlots:     getEnvInt("BACKUP_MAX_SLOTS", 5),
		BackupReminderDays: getEnvInt("BACKUP_REMINDER_DAYS", 7),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 10485760)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// DatabasePath returns the SQLite file used when no DATABASE_URL is set.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "payroll.db")
}

// BackupDir returns the directory holding rotating snapshot files.
func (c Config) BackupDir() string {
	return filepath.Join(c.DataDir, "backups")
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" && strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATA_DIR or DATABASE_URL is required")
	}
	if c.AdminPassword != "" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set when ADMIN_PASSWORD is configured")
	}
	if c.Environment == "production" && c.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD must be set in production")
	}
	switch int(c.BackupInterval / time.Minute) {
	case 5, 15, 30, 60:
	default:
		return fmt.Errorf("BACKUP_INTERVAL_MINUTES must be one of 5, 15, 30, 60")
	}
	if c.BackupMaxSlots <= 0 {
		return fmt.Errorf("BACKUP_MAX_SLOTS must be positive")
	}
	if c.BackupReminderDays <= 0 {
		return fmt.Errorf("BACKUP_REMINDER_DAYS must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}
