package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string `mapstructure:"port"`
	AIBackend      string `mapstructure:"ai_backend"` // "openai" or "gemini"
	AIEndpoint     string `mapstructure:"ai_endpoint"`
	Model          string `mapstructure:"model"`
	OpenAIAPIKey   string `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKeys  string `mapstructure:"GEMINI_API_KEYS"` // comma-separated
	UploadDir      string `mapstructure:"upload_dir"`
	DataFile       string `mapstructure:"data_file"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RequestTimeout int    `mapstructure:"request_timeout"` // seconds, applies to LLM calls
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetDefault("port", "8080")
	v.SetDefault("ai_backend", "openai")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("data_file", "data/asknote.json")
	v.SetDefault("request_timeout", 60)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEYS")
	v.BindEnv("REDIS_ADDR")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// GeminiKeys splits the comma-separated key list from the environment.
func (c *Config) GeminiKeys() []string {
	if c.GeminiAPIKeys == "" {
		return nil
	}
	parts := strings.Split(c.GeminiAPIKeys, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	return keys
}
