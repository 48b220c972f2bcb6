package config

import "time"

// Config is the full application configuration, loaded from a YAML file
// with environment variable overrides applied on top.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Ollama    OllamaConfig    `yaml:"ollama"`
	Interview InterviewConfig `yaml:"interview"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	SessionTTL      time.Duration `yaml:"session_ttl"`
}

// OllamaConfig holds the model server settings.
type OllamaConfig struct {
	BaseURL         string        `yaml:"base_url"`
	Model           string        `yaml:"model"`
	Temperature     float64       `yaml:"temperature"`
	TopP            float64       `yaml:"top_p"`
	MaxTokens       int           `yaml:"max_tokens"`
	GenerateTimeout time.Duration `yaml:"generate_timeout"`
	ProbeTimeout    time.Duration `yaml:"probe_timeout"`
}

// InterviewConfig holds the interview progression settings.
type InterviewConfig struct {
	MaxTurns   int    `yaml:"max_turns"`
	ResultsDir string `yaml:"results_dir"`
}

// LogConfig holds the logging settings.
type LogConfig struct {
	FilePath   string `yaml:"file_path"`
	Production bool   `yaml:"production"`
}
