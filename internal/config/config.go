package config

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// fileConfig mirrors the optional TOML config file. Environment variables
// override anything set here.
type fileConfig struct {
	HTTPAddr   string `toml:"http_addr"`
	LogLevel   string `toml:"log_level"`
	ContentDir string `toml:"content_dir"`
	LLMModel   string `toml:"llm_model"`
	LLMBaseURL string `toml:"llm_base_url"`
}

type Config struct {
	HTTPAddr   string
	LogLevel   slog.Level
	ContentDir string
	DetailPath string
	FullPath   string
	DailyPath  string
	ImageRoot  string
	LLMModel   string
	LLMBaseURL string
	LLMTimeout time.Duration

	// OpenAIAPIKey is an optional server-wide default. Sessions normally
	// supply their own credential; no key is required at startup.
	OpenAIAPIKey string
}

// Load builds the config from an optional TOML file, a .env file if present,
// and the environment, in increasing priority.
func Load(configPath string) (Config, error) {
	_ = godotenv.Load()

	var fc fileConfig
	if configPath == "" {
		configPath = os.Getenv("VOLVA_CONFIG")
	}
	if configPath != "" {
		if _, err := toml.DecodeFile(configPath, &fc); err != nil {
			return Config{}, fmt.Errorf("decode config file %s: %w", configPath, err)
		}
	}

	c := Config{
		HTTPAddr:     envOr("HTTP_ADDR", cmp.Or(fc.HTTPAddr, ":8080")),
		ContentDir:   envOr("CONTENT_DIR", cmp.Or(fc.ContentDir, "data")),
		LLMModel:     envOr("LLM_MODEL", cmp.Or(fc.LLMModel, "gpt-3.5-turbo")),
		LLMBaseURL:   envOr("LLM_BASE_URL", cmp.Or(fc.LLMBaseURL, "https://api.openai.com/v1")),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		LLMTimeout:   30 * time.Second,
	}

	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LLM_TIMEOUT %q: %w", v, err)
		}
		c.LLMTimeout = d
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", cmp.Or(fc.LogLevel, "info")))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	c.DetailPath = envOr("DETAIL_PATH", filepath.Join(c.ContentDir, "processed", "front_data_rune.json"))
	c.FullPath = envOr("FULL_PATH", filepath.Join(c.ContentDir, "processed", "big_data_rune.json"))
	c.DailyPath = envOr("DAILY_PATH", filepath.Join(c.ContentDir, "processed", "daily_data_rune.json"))
	c.ImageRoot = envOr("IMAGE_ROOT", filepath.Join(c.ContentDir, "img_rune"))

	return c, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
