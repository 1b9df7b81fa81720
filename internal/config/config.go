// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the report server configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Chunker ChunkerConfig `mapstructure:"chunker"`
	Upload  UploadConfig  `mapstructure:"upload"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LLMConfig holds language model connection settings. The model itself is an
// external collaborator; only the endpoint and generation identity live here.
type LLMConfig struct {
	Provider string `mapstructure:"provider"` // openai | llamacpp | mock
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
}

// ChunkerConfig holds text chunking settings
type ChunkerConfig struct {
	MaxChars int `mapstructure:"max_chars"`
	Overlap  int `mapstructure:"overlap"`
}

// UploadConfig holds upload limits
type UploadConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

// LogConfig holds logging settings
type LogConfig struct {
	File string `mapstructure:"file"`
}

// LoadConfig loads configuration from file and environment
func LoadConfig(configPath string) (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetConfigName("config")

	// Set default values
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.base_url", "http://localhost:8081/v1")
	viper.SetDefault("llm.model", "local")
	viper.SetDefault("chunker.max_chars", 8000)
	viper.SetDefault("chunker.overlap", 200)
	viper.SetDefault("upload.max_bytes", 32<<20)
	viper.SetDefault("log.file", "report-server.log")

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		// Otherwise, look in home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir := filepath.Join(home, ".report-agent")
		configFile := filepath.Join(configDir, "config.yaml")

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		// If config file doesn't exist, create default one
		if _, err := os.Stat(configFile); os.IsNotExist(err) {
			if err := generateDefaultConfig(configFile); err != nil {
				return nil, fmt.Errorf("failed to generate default config: %w", err)
			}
		}

		viper.SetConfigFile(configFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Allow environment variables (REPORT_SERVER_PORT, REPORT_LLM_API_KEY, ...)
	viper.SetEnvPrefix("REPORT")
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d", cfg.Server.Port)
	}
	switch cfg.LLM.Provider {
	case "openai", "llamacpp", "mock":
	default:
		return fmt.Errorf("llm.provider must be openai, llamacpp or mock, got %q", cfg.LLM.Provider)
	}
	if cfg.Chunker.MaxChars <= 0 {
		return fmt.Errorf("chunker.max_chars must be positive")
	}
	if cfg.Chunker.Overlap < 0 || cfg.Chunker.Overlap >= cfg.Chunker.MaxChars {
		return fmt.Errorf("chunker.overlap must be in [0, max_chars)")
	}
	if cfg.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be positive")
	}
	return nil
}

// generateDefaultConfig writes a starter config file
func generateDefaultConfig(configFile string) error {
	defaultConfig := `# Report server configuration
server:
  port: 8080

llm:
  # openai: any OpenAI-compatible endpoint (llama-server, Ollama, OpenAI)
  # llamacpp: llama.cpp native /completion endpoint
  # mock: deterministic canned responses, no model required
  provider: openai
  base_url: http://localhost:8081/v1
  api_key: ""
  model: local

chunker:
  max_chars: 8000
  overlap: 200

upload:
  max_bytes: 33554432

log:
  file: report-server.log
`
	return os.WriteFile(configFile, []byte(defaultConfig), 0644)
}
