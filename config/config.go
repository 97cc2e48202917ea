package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds environment driven configuration values.
// Sensitive data never has defaults inside code and must be provided via the
// environment (or a local .env file during development).
type AppConfig struct {
	AppPort   string
	GinMode   string
	JWTSecret string

	// Database: DatabaseURL wins over the discrete DB_* values.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// Redis for response caching (optional; cache disabled when host empty)
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	// Uploads
	UploadDir        string
	UploadMaxSizeMB  int
	AllowedMimeTypes []string

	// Rate limiting and CORS
	RateLimitPerMinute int
	AllowedOrigins     []string

	// Logging
	LogLevel      string
	LogPath       string
	GinLogPath    string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load reads the application configuration from the environment. It should be
// called once during boot; missing required values abort startup.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	// .env is a development convenience; the real environment always wins.
	_ = godotenv.Load()

	cfg = AppConfig{
		AppPort:   getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "release"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", ""),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getEnv("DB_NAME", "inkwell"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnvInt("REDIS_PORT", 6379),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		UploadMaxSizeMB: getEnvInt("UPLOAD_MAX_SIZE_MB", 5),
		AllowedMimeTypes: splitList(getEnv("UPLOAD_ALLOWED_TYPES",
			"image/jpeg,image/png,image/gif,image/webp")),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		AllowedOrigins:     splitList(getEnv("ALLOWED_ORIGINS", "*")),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogPath:       getEnv("LOG_PATH", ""),
		GinLogPath:    getEnv("GIN_LOG_PATH", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 7),
		LogCompress:   getEnvBool("LOG_COMPRESS", false),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}
	if cfg.DatabaseURL == "" && cfg.DBHost == "" {
		log.Fatal("DATABASE_URL or DB_HOST must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
