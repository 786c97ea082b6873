package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all the configuration variables for the application
type Config struct {
	Env  string
	Port string

	// APIBaseURL is the origin + prefix of the hackathon REST backend.
	APIBaseURL     string
	RequestTimeout time.Duration

	DBDriver   string
	DBHost     string
	DBUser     string
	DBPass     string
	DBName     string
	DBPort     string
	SQLitePath string

	SessionCookie string
	CookieSecure  bool
	CORSOrigins   []string

	ImageHost        string
	CloudinaryURL    string
	CloudinaryCloud  string
	CloudinaryPreset string
	S3Bucket         string
	S3Region         string
	AWSAccessKey     string
	AWSSecretKey     string

	CheckConcurrency int
	BannerDelay      time.Duration
}

// Load reads the application configuration from environment variables
// and the .env file if it exists.
func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Debug("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Env:  getEnvOrDefault("ENV", "development"),
		Port: getEnvOrDefault("PORT", "3000"),

		APIBaseURL:     strings.TrimRight(getEnvOrDefault("API_BASE_URL", "https://devpost-back.onrender.com/api"), "/"),
		RequestTimeout: getDurationOrDefault("API_TIMEOUT", 15*time.Second),

		DBDriver:   getEnvOrDefault("DB_DRIVER", "sqlite"),
		DBHost:     getEnvOrDefault("DB_HOST", "host.docker.internal"),
		DBUser:     getEnvOrDefault("DB_USER", "hackafrica_user"),
		DBPass:     getEnvOrDefault("DB_PASSWORD", "supersecretpassword"),
		DBName:     getEnvOrDefault("DB_NAME", "hackafrica"),
		DBPort:     getEnvOrDefault("DB_PORT", "5432"),
		SQLitePath: getEnvOrDefault("SQLITE_PATH", "sessions.db"),

		SessionCookie: getEnvOrDefault("SESSION_COOKIE", "hackafrica_sid"),
		CookieSecure:  getBoolOrDefault("COOKIE_SECURE", false),
		CORSOrigins:   getListOrDefault("CORS_ORIGINS", []string{"http://localhost:3000"}),

		ImageHost:        getEnvOrDefault("IMAGE_HOST", "cloudinary"),
		CloudinaryURL:    strings.TrimRight(getEnvOrDefault("CLOUDINARY_URL", "https://api.cloudinary.com"), "/"),
		CloudinaryCloud:  getEnvOrDefault("CLOUDINARY_CLOUD", "dagn33ye3"),
		CloudinaryPreset: getEnvOrDefault("CLOUDINARY_PRESET", "devpost-hackathons"),
		S3Bucket:         os.Getenv("S3_BUCKET"),
		S3Region:         getEnvOrDefault("AWS_REGION", "eu-central-1"),
		AWSAccessKey:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:     os.Getenv("AWS_SECRET_ACCESS_KEY"),

		CheckConcurrency: getIntOrDefault("PARTICIPATION_CHECK_CONCURRENCY", 4),
		BannerDelay:      getDurationOrDefault("BANNER_DELAY", 5*time.Second),
	}

	return cfg
}

// IsProduction reports whether the app runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

func getEnvOrDefault(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	return value
}

func getIntOrDefault(key string, fallback int) int {
	raw := getEnvOrDefault(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		slog.Warn("Ignoring invalid integer setting", "key", key, "value", raw)
		return fallback
	}
	return n
}

func getBoolOrDefault(key string, fallback bool) bool {
	raw := getEnvOrDefault(key, "")
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("Ignoring invalid boolean setting", "key", key, "value", raw)
		return fallback
	}
	return b
}

func getDurationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := getEnvOrDefault(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("Ignoring invalid duration setting", "key", key, "value", raw)
		return fallback
	}
	return d
}

func getListOrDefault(key string, fallback []string) []string {
	raw := getEnvOrDefault(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
