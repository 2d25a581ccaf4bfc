package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the service.
type Config struct {
	Server   ServerConfig
	Instance InstanceConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// InstanceConfig identifies the public face of this instance.
type InstanceConfig struct {
	// Domain is the public hostname Mastodon clients see.
	Domain string
	Scheme string
}

// HostURL returns the public base URL, e.g. "https://ykm.example.com".
func (c *InstanceConfig) HostURL() string {
	return c.Scheme + "://" + c.Domain
}

// ContactEmail returns the advertised admin contact.
func (c *InstanceConfig) ContactEmail() string {
	return "admin@" + c.Domain
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// SecurityConfig holds security-related configuration.
type SecurityConfig struct {
	// CredentialSealSecret keys the at-rest encryption of stored
	// Twitter cookie jars. Required.
	CredentialSealSecret string
	SecureCookies        bool
	AllowedOrigins       []string
	LoginRateLimit       int
	LoginRateWindow      time.Duration
}

// LoggingConfig holds logger configuration.
type LoggingConfig struct {
	Level       string
	Environment string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Instance: InstanceConfig{
			Domain: getEnv("HOST", ""),
			Scheme: getEnv("SCHEME", "https"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "yurikamome"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "yurikamome"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnvInt("REDIS_PORT", 6379),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvInt("REDIS_DB", 0),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Security: SecurityConfig{
			CredentialSealSecret: getEnv("CREDENTIAL_SEAL_SECRET", ""),
			SecureCookies:        getEnvBool("SECURE_COOKIES", true),
			AllowedOrigins:       getEnvSlice("ALLOWED_ORIGINS", []string{"*"}),
			LoginRateLimit:       getEnvInt("LOGIN_RATE_LIMIT", 5),
			LoginRateWindow:      getEnvDuration("LOGIN_RATE_WINDOW", 15*time.Minute),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
	}
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.Instance.Domain == "" {
		return fmt.Errorf("environment variable HOST is required")
	}
	if c.Instance.Scheme != "http" && c.Instance.Scheme != "https" {
		return fmt.Errorf("SCHEME must be http or https, got %q", c.Instance.Scheme)
	}
	if c.Security.CredentialSealSecret == "" {
		return fmt.Errorf("environment variable CREDENTIAL_SEAL_SECRET is required")
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Database +
		" sslmode=" + c.SSLMode
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
