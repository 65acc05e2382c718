package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Gemini AI
	GoogleAPIKey      string
	GeminiModel       string
	GeminiTemperature *float32
	GeminiCallTimeout time.Duration

	// Bounds the whole replay-and-send chain of one request
	ChatRequestTimeout time.Duration

	// CORS
	AllowedOrigins []string

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "8000"),
		Env:                getEnvOrDefault("ENV", "development"),
		GoogleAPIKey:       mustGetEnv("GOOGLE_API_KEY"),
		GeminiModel:        getEnvOrDefault("GEMINI_MODEL", "gemini-pro"),
		GeminiTemperature:  getEnvAsFloat32("GEMINI_TEMPERATURE"),
		GeminiCallTimeout:  getEnvAsDurationOrDefault("GEMINI_CALL_TIMEOUT", 60*time.Second),
		ChatRequestTimeout: getEnvAsDurationOrDefault("CHAT_REQUEST_TIMEOUT", 4*time.Minute),
		AllowedOrigins:     getEnvAsListOrDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          getEnvOrDefault("LOG_FORMAT", "json"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

// getEnvAsFloat32 returns nil when the variable is unset or not a number,
// leaving the provider default in place.
func getEnvAsFloat32(key string) *float32 {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	f, err := strconv.ParseFloat(val, 32)
	if err != nil {
		return nil
	}
	v := float32(f)
	return &v
}

func getEnvAsListOrDefault(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
