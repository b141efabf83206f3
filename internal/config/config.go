package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// FallbackJWTSecret is the insecure local-development signing secret used
// when JWT_SECRET is not set. Deployments must override it.
const FallbackJWTSecret = "your_jwt_secret_key_here"

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name
	JWTSecret  string // JWT secret key
	RedisAddr  string // Redis server address, empty disables caching
	RedisPass  string // Redis password
	RedisDB    int    // Redis database number
	IsProd     bool   // Is production environment
}

// LoadConfig loads configuration from environment variables.
// Every key has a local-development default, including the fallback
// JWT secret and a passwordless root database user.
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:    getEnv("APP_PORT", "5000"),             // Application port
		DBUser:     getEnv("DB_USER", "root"),              // Database user
		DBPassword: getEnv("DB_PASSWORD", ""),              // Database password
		DBHost:     getEnv("DB_HOST", "localhost"),         // Database host
		DBPort:     getEnv("DB_PORT", "3306"),              // Database port
		DBName:     getEnv("DB_NAME", "finance_manager"),   // Database name
		JWTSecret:  getEnv("JWT_SECRET", FallbackJWTSecret), // JWT secret key
		RedisAddr:  os.Getenv("REDIS_ADDR"),                // Redis server address
		RedisPass:  os.Getenv("REDIS_PASS"),                // Redis password
		RedisDB:    redisDB,                                // Redis database number
		IsProd:     os.Getenv("IS_PROD") == "true",         // Is production environment
	}
}

// DSN builds the MySQL Data Source Name from the database settings
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// UsingFallbackSecret reports whether the insecure default secret is active
func (c *Config) UsingFallbackSecret() bool {
	return c.JWTSecret == FallbackJWTSecret
}

// getEnv returns the value of the environment variable or a default
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
