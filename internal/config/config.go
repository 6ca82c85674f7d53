package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// LoggingConfig selects the log level and output encoding.
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or console
}

// ServerConfig holds the server tier configuration loaded from environment.
type ServerConfig struct {
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	DBDSN        string
	DBMaxConns   int
	DBMigrate    bool
	Logging      LoggingConfig
}

// GatewayConfig holds the gateway tier configuration loaded from environment.
type GatewayConfig struct {
	IsProduction    bool
	ProdOrigins     string
	HTTPAddr        string
	ServerURL       string
	UpstreamTimeout time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int
	Logging         LoggingConfig
}

// LoadServer loads server configuration from .env (optional) and environment variables.
func LoadServer() (*ServerConfig, error) {
	loadDotEnv()

	cfg := &ServerConfig{}

	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")
	cfg.IsProduction = getEnv("APP_ENV", "dev") == PROD_STRING

	// HTTP listen address (default: :9090)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":9090")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	var err error
	cfg.DBMaxConns, err = getEnvAsInt("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	cfg.DBMigrate, err = getEnvAsBool("DB_MIGRATE", true)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIGRATE: %w", err)
	}

	cfg.Logging = loadLogging()

	return cfg, nil
}

// LoadGateway loads gateway configuration from .env (optional) and environment variables.
func LoadGateway() (*GatewayConfig, error) {
	loadDotEnv()

	cfg := &GatewayConfig{}

	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")
	cfg.IsProduction = getEnv("APP_ENV", "dev") == PROD_STRING
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.ServerURL = getEnv("SERVER_URL", "http://localhost:9090")
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("SERVER_URL must not be empty")
	}

	timeout, err := time.ParseDuration(getEnv("UPSTREAM_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
	}
	cfg.UpstreamTimeout = timeout

	// Requests per second per caller; 0 disables the limiter.
	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	cfg.RateLimitRPS = rps

	cfg.RateLimitBurst, err = getEnvAsInt("RATE_LIMIT_BURST", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	cfg.Logging = loadLogging()

	return cfg, nil
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}
}

func loadLogging() LoggingConfig {
	return LoggingConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	}
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, fmt.Errorf("env %s value %q is not a valid bool: %w", key, valStr, err)
	}

	return val, nil
}
