package app

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "BIOLINK"

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type Config struct {
	DBPath   string
	StateKey string
	LogLevel string
	LogFile  string
	Gemini   GeminiConfig
}

// LoadConfig reads configuration from, in increasing precedence: built-in
// defaults, config.yml in configDir, a .env file in the working directory
// and BIOLINK_* environment variables. A missing config.yml or .env is fine.
func LoadConfig(configDir string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	if strings.TrimSpace(configDir) != "" {
		v.AddConfigPath(configDir)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("gemini.api_key", envPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind gemini api key env: %w", err)
	}

	v.SetDefault("db", "")
	v.SetDefault("state_key", "default")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("gemini.timeout", "30s")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	timeout, err := time.ParseDuration(v.GetString("gemini.timeout"))
	if err != nil || timeout <= 0 {
		return Config{}, fmt.Errorf("invalid gemini.timeout %q (expected a positive duration like 30s)", v.GetString("gemini.timeout"))
	}

	return Config{
		DBPath:   v.GetString("db"),
		StateKey: v.GetString("state_key"),
		LogLevel: v.GetString("log.level"),
		LogFile:  v.GetString("log.file"),
		Gemini: GeminiConfig{
			APIKey:  v.GetString("gemini.api_key"),
			Model:   v.GetString("gemini.model"),
			BaseURL: v.GetString("gemini.base_url"),
			Timeout: timeout,
		},
	}, nil
}
