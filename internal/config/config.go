package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Provider ProviderConfig
	CORS     CORSConfig
	Secrets  SecretsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// ProviderConfig holds the swap-data provider configuration
type ProviderConfig struct {
	BaseURL       string
	APIKey        string        // plain key from env; overrides the stored one
	Chains        []string      // chains scanned per recap
	PriceCacheTTL time.Duration // how long a cached quote stays fresh
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// SecretsConfig holds encryption settings for credentials at rest
type SecretsConfig struct {
	FernetKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	ttlMinutes, err := strconv.Atoi(getEnv("PRICE_CACHE_TTL_MINUTES", "10"))
	if err != nil || ttlMinutes <= 0 {
		return nil, fmt.Errorf("invalid PRICE_CACHE_TTL_MINUTES: %q", os.Getenv("PRICE_CACHE_TTL_MINUTES"))
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/sproutcard.db"),
		},
		Provider: ProviderConfig{
			BaseURL:       getEnv("PROVIDER_BASE_URL", "https://api.swapscan.dev"),
			APIKey:        getEnv("PROVIDER_API_KEY", ""),
			Chains:        splitAndTrim(getEnv("PROVIDER_CHAINS", "ethereum,base,arbitrum,bsc")),
			PriceCacheTTL: time.Duration(ttlMinutes) * time.Minute,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Secrets: SecretsConfig{
			FernetKey: getEnv("FERNET_KEY", ""),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// splitAndTrim splits a comma-separated list, dropping empty entries
func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
