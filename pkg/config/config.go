package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds environment driven settings for the API server.
type Config struct {
	Env            string
	Host           string
	Port           string
	AllowedOrigins []string
	LogLevel       string

	JWTSecret        string
	JWTRefreshSecret string

	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Stream   StreamConfig
}

// RedisConfig contains cache connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StorageConfig contains the object storage collaborator settings.
// Thumbnails and videos are uploaded here before content records reference them.
type StorageConfig struct {
	Zone    string
	APIKey  string
	BaseURL string
	CDNURL  string
}

// StreamConfig contains signed playback URL settings. The raw storage URL is
// never handed to clients; playback goes through tokenized delivery URLs.
type StreamConfig struct {
	SecurityKey string
	DeliveryURL string
	ExpiresIn   int // seconds
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime int // seconds
	ConnMaxIdleTime int // seconds
	RunMigrations   bool
}

// Load builds a Config from environment variables with sensible defaults.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Env:              getEnv("OTT_SERVER_ENV", "development"),
		Host:             getEnv("OTT_SERVER_HOST", "0.0.0.0"),
		Port:             getEnv("OTT_SERVER_PORT", "8080"),
		LogLevel:         getEnv("OTT_LOG_LEVEL", "info"),
		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key-change-me"),
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET", "your-refresh-secret-change-me"),
	}

	cfg.AllowedOrigins = splitAndTrim(os.Getenv("OTT_ALLOWED_ORIGINS"))
	cfg.Database = loadDatabaseConfig()
	cfg.Redis = loadRedisConfig()
	cfg.Storage = loadStorageConfig()
	cfg.Stream = loadStreamConfig()

	return cfg, nil
}

// ServerAddress joins the host and port into a listen address.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsProduction reports whether the app is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// DSN builds a PostgreSQL DSN for gorm.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
		d.TimeZone,
	)
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:            getEnv("OTT_DB_HOST", "127.0.0.1"),
		Port:            getEnv("OTT_DB_PORT", "5432"),
		User:            getEnv("OTT_DB_USER", "postgres"),
		Password:        os.Getenv("OTT_DB_PASSWORD"),
		Name:            getEnv("OTT_DB_NAME", "ott"),
		SSLMode:         getEnv("OTT_DB_SSLMODE", "disable"),
		TimeZone:        getEnv("OTT_DB_TIMEZONE", "UTC"),
		MaxIdleConns:    getEnvAsInt("OTT_DB_MAX_IDLE_CONNS", 5),
		MaxOpenConns:    getEnvAsInt("OTT_DB_MAX_OPEN_CONNS", 20),
		ConnMaxLifetime: getEnvAsInt("OTT_DB_CONN_MAX_LIFETIME", 1800),
		ConnMaxIdleTime: getEnvAsInt("OTT_DB_CONN_MAX_IDLE_TIME", 300),
		RunMigrations:   getEnvAsBool("OTT_DB_RUN_MIGRATIONS", false),
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:     getEnv("OTT_REDIS_ADDR", ""),
		Password: os.Getenv("OTT_REDIS_PASSWORD"),
		DB:       getEnvAsInt("OTT_REDIS_DB", 0),
	}
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Zone:    getEnv("OTT_STORAGE_ZONE", ""),
		APIKey:  getEnv("OTT_STORAGE_API_KEY", ""),
		BaseURL: getEnv("OTT_STORAGE_BASE_URL", "https://storage.bunnycdn.com"),
		CDNURL:  getEnv("OTT_STORAGE_CDN_URL", ""),
	}
}

func loadStreamConfig() StreamConfig {
	return StreamConfig{
		SecurityKey: getEnv("OTT_STREAM_SECURITY_KEY", ""),
		DeliveryURL: getEnv("OTT_STREAM_DELIVERY_URL", ""),
		ExpiresIn:   getEnvAsInt("OTT_STREAM_EXPIRES_IN", 3600),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return fallback
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.FieldsFunc(value, func(r rune) bool {
		switch r {
		case ',', ';':
			return true
		default:
			return false
		}
	})

	var cleaned []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}

	if len(cleaned) == 0 {
		return nil
	}

	return cleaned
}
