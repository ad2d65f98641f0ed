package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIURL           string
	SessionFile      string
	PollInterval     int
	HTTPTimeout      int
	LogLevel         string
	SandboxPort      string
	SandboxJWTSecret string
}

func Load() *Config {
	// Load .env file if exists
	godotenv.Load()

	return &Config{
		APIURL:           getEnv("API_URL", "http://localhost:8080"),
		SessionFile:      getEnv("SESSION_FILE", defaultSessionFile()),
		PollInterval:     getEnvAsInt("POLL_INTERVAL_SECONDS", 30),
		HTTPTimeout:      getEnvAsInt("HTTP_TIMEOUT_SECONDS", 30),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		SandboxPort:      getEnv("SANDBOX_PORT", "8080"),
		SandboxJWTSecret: getEnv("SANDBOX_JWT_SECRET", "sandbox-secret"),
	}
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".qrdine", "session.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
