package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBConn    string
	LogLevel  string
	JWTSecret string
	TokenTTL  time.Duration

	// Upstream directory API (public user data).
	DirectoryListURL   string
	DirectoryCreateURL string

	// Upstream camera-management API.
	CameraBaseURL string
	CameraSID     string
	CameraKey     string

	// Pagination for proxy endpoints.
	PageDefaultLimit int
	PageMaxLimit     int

	// SMTP settings for the welcome mail. Mail is disabled when SMTPHost is
	// empty.
	SMTPHost    string
	SMTPPort    string
	SMTPUser    string
	SMTPPass    string
	SenderEmail string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	defaultLimit, err := getEnvInt("PAGE_DEFAULT_LIMIT", 3)
	if err != nil {
		return nil, err
	}
	maxLimit, err := getEnvInt("PAGE_MAX_LIMIT", 8)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		DBConn:             getEnv("DB_CONN", "host=localhost port=5432 user=test password=test dbname=recipes sslmode=disable"),
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:          getEnv("JWT_SECRET", "secret"),
		TokenTTL:           tokenTTL,
		DirectoryListURL:   getEnv("DIRECTORY_LIST_URL", "https://jsonplaceholder.typicode.com/users"),
		DirectoryCreateURL: getEnv("DIRECTORY_CREATE_URL", "https://jsonplaceholder.typicode.com/posts"),
		CameraBaseURL:      getEnv("CAMERA_BASE_URL", "http://192.168.1.13:8000"),
		CameraSID:          getEnv("CAMERA_SID", "root"),
		CameraKey:          getEnv("CAMERA_KEY", "Accelx123456"),
		PageDefaultLimit:   defaultLimit,
		PageMaxLimit:       maxLimit,
		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           getEnv("SMTP_PORT", "587"),
		SMTPUser:           getEnv("SMTP_USER", ""),
		SMTPPass:           getEnv("SMTP_PASS", ""),
		SenderEmail:        getEnv("SENDER_EMAIL", "noreply@beet.com"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.PageDefaultLimit <= 0 || cfg.PageMaxLimit < cfg.PageDefaultLimit {
		return nil, fmt.Errorf("invalid pagination limits: default=%d max=%d", cfg.PageDefaultLimit, cfg.PageMaxLimit)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
