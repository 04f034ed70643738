package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Store   StoreConfig
	Server  ServerConfig
	Chat    ChatConfig
	Logging LoggingConfig
	Weather WeatherConfig
}

// StoreConfig holds knowledge store configuration
type StoreConfig struct {
	Driver             string // sqlite or postgres
	DSN                string // full connection string (takes precedence)
	SQLitePath         string
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	ConnectAttempts    int
	SeedOnStart        bool
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
	SessionTTL     time.Duration
	SecureCookie   bool
}

// ChatConfig holds message understanding configuration
type ChatConfig struct {
	VocabularyFile string // optional YAML file replacing the built-in vocabulary
	FuzzyCutoff    float64
	MaxSuggestions int
	StoreTimeout   time.Duration
	EnrichWeather  bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// WeatherConfig holds OpenWeatherMap configuration
type WeatherConfig struct {
	APIKey      string
	BaseURL     string
	CountryCode string
	Language    string
	Timeout     int // seconds
	Enabled     bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Store: StoreConfig{
			Driver:             strings.ToLower(getEnv("STORE_DRIVER", "sqlite")),
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			SQLitePath:         getEnv("SQLITE_PATH", "data/agri_data.db"),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "agribot"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("STORE_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("STORE_MAX_IDLE_CONNECTIONS", 5),
			ConnectAttempts:    getEnvAsInt("STORE_CONNECT_ATTEMPTS", 5),
			SeedOnStart:        getEnvAsBool("STORE_SEED_ON_START", true),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 5000),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,DELETE,OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
			SessionTTL:     getEnvAsDuration("SESSION_TTL", 2*time.Hour),
			SecureCookie:   getEnvAsBool("SESSION_SECURE_COOKIE", false),
		},
		Chat: ChatConfig{
			VocabularyFile: getEnv("VOCABULARY_FILE", ""),
			FuzzyCutoff:    getEnvAsFloat("CITY_FUZZY_CUTOFF", 0.7),
			MaxSuggestions: getEnvAsInt("MAX_SUGGESTIONS", 3),
			StoreTimeout:   getEnvAsDuration("STORE_QUERY_TIMEOUT", 2*time.Second),
			EnrichWeather:  getEnvAsBool("CHAT_ENRICH_WEATHER", true),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Weather: WeatherConfig{
			APIKey:      getEnv("OPENWEATHER_API_KEY", ""),
			BaseURL:     getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
			CountryCode: getEnv("OPENWEATHER_COUNTRY", "BF"),
			Language:    getEnv("OPENWEATHER_LANG", "fr"),
			Timeout:     getEnvAsInt("OPENWEATHER_TIMEOUT", 5),
			Enabled:     getEnv("OPENWEATHER_API_KEY", "") != "",
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late at runtime
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: must be sqlite or postgres", c.Store.Driver)
	}
	if c.Chat.FuzzyCutoff <= 0 || c.Chat.FuzzyCutoff > 1 {
		return fmt.Errorf("invalid CITY_FUZZY_CUTOFF %.2f: must be in (0,1]", c.Chat.FuzzyCutoff)
	}
	if c.Store.ConnectAttempts < 1 {
		return fmt.Errorf("invalid STORE_CONNECT_ATTEMPTS %d: must be at least 1", c.Store.ConnectAttempts)
	}
	return nil
}

// GetStoreDSN returns the connection string for the configured driver
func (c *Config) GetStoreDSN() string {
	if c.Store.Driver == "sqlite" {
		return c.Store.SQLitePath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	// full DSN wins over the discrete fields
	if c.Store.DSN != "" {
		return c.Store.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Store.Host,
		c.Store.Port,
		c.Store.User,
		c.Store.Password,
		c.Store.Database,
		c.Store.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default %t", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s, using default %s", key, defaultValue)
		return defaultValue
	}
	return value
}
