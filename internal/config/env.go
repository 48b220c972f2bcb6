package config

import (
	"os"
	"strconv"
	"time"
)

// applyEnvOverrides lets deployment environments override the file-based
// configuration without editing it.
func applyEnvOverrides(config *Config) {
	config.Server.Port = getEnvAsInt("SERVER_PORT", config.Server.Port)
	config.Ollama.BaseURL = getEnv("OLLAMA_BASE_URL", config.Ollama.BaseURL)
	config.Ollama.Model = getEnv("OLLAMA_MODEL", config.Ollama.Model)
	config.Ollama.Temperature = getEnvAsFloat("OLLAMA_TEMPERATURE", config.Ollama.Temperature)
	config.Ollama.MaxTokens = getEnvAsInt("OLLAMA_MAX_TOKENS", config.Ollama.MaxTokens)
	config.Ollama.GenerateTimeout = getEnvAsDuration("OLLAMA_GENERATE_TIMEOUT", config.Ollama.GenerateTimeout)
	config.Interview.MaxTurns = getEnvAsInt("INTERVIEW_MAX_TURNS", config.Interview.MaxTurns)
	config.Interview.ResultsDir = getEnv("INTERVIEW_RESULTS_DIR", config.Interview.ResultsDir)
	config.Log.FilePath = getEnv("LOG_FILE_PATH", config.Log.FilePath)
	config.Log.Production = getEnvAsBool("LOG_PRODUCTION", config.Log.Production)
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
