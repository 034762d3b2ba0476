package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config carries all runtime settings, loaded from the environment with a
// .env file as fallback.
type Config struct {
	Port      string
	ClientURL string

	GeminiAPIKey string
	GeminiModel  string

	Judge0URL    string
	Judge0APIKey string
	Judge0Host   string

	StatsSchedule string
}

func Load() *Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Port:          getEnvOrDefault("PORT", "5000"),
		ClientURL:     getEnvOrDefault("CLIENT_URL", "http://localhost:3000"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash-latest"),
		Judge0URL:     getEnvOrDefault("JUDGE0_URL", "https://judge0-ce.p.rapidapi.com"),
		Judge0APIKey:  os.Getenv("JUDGE0_API_KEY"),
		Judge0Host:    getEnvOrDefault("JUDGE0_HOST", "judge0-ce.p.rapidapi.com"),
		StatsSchedule: getEnvOrDefault("STATS_SCHEDULE", "@every 1m"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
