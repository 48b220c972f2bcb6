package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads the configuration file, applies defaults and environment
// overrides, and validates the result.
func Load(filename string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file %s: %w", filename, err)
		}
		// A missing file is fine, defaults plus env cover everything.
	} else {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parsing config YAML: %w", err)
		}
	}

	applyEnvOverrides(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return config, nil
}

// Default returns the configuration used when no file or environment
// overrides are present. The Ollama settings mirror a local qwen2.5 setup.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			ReadTimeout: 30 * time.Second,
			// Responses wait on a slow local model, so the write timeout
			// must outlast the generate timeout.
			WriteTimeout:    7 * time.Minute,
			ShutdownTimeout: 30 * time.Second,
			SessionTTL:      2 * time.Hour,
		},
		Ollama: OllamaConfig{
			BaseURL:         "http://localhost:11434",
			Model:           "qwen2.5:7b",
			Temperature:     0.7,
			TopP:            0.9,
			MaxTokens:       500,
			GenerateTimeout: 6 * time.Minute,
			ProbeTimeout:    5 * time.Second,
		},
		Interview: InterviewConfig{
			MaxTurns:   8,
			ResultsDir: "results",
		},
		Log: LogConfig{
			FilePath:   "logs/app.log",
			Production: false,
		},
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid port, got %d", config.Server.Port)
	}

	if config.Ollama.BaseURL == "" {
		return fmt.Errorf("ollama.base_url is required")
	}

	if config.Ollama.Model == "" {
		return fmt.Errorf("ollama.model is required")
	}

	if config.Ollama.Temperature < 0 || config.Ollama.Temperature > 2 {
		return fmt.Errorf("ollama.temperature must be between 0 and 2")
	}

	if config.Ollama.GenerateTimeout <= 0 {
		return fmt.Errorf("ollama.generate_timeout must be positive")
	}

	if config.Interview.MaxTurns <= 0 {
		return fmt.Errorf("interview.max_turns must be greater than 0")
	}

	return nil
}
