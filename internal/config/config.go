package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config carries the ambient defaults for the conversion pipeline. Values
// load from a YAML overlay file (DOCFORGE_CONFIG) first, then individual
// environment variables override.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // json or text

	DefaultPageSize    string `yaml:"default_page_size"`
	DefaultOrientation string `yaml:"default_orientation"`
	DefaultQuality     int    `yaml:"default_quality"`
	DefaultCompression int    `yaml:"default_compression"`

	MaxFileSize int64  `yaml:"max_file_size"` // bytes, per input file
	OutputDir   string `yaml:"output_dir"`

	MetricsPort string `yaml:"metrics_port"` // served only in mcp mode
}

func defaults() Config {
	return Config{
		LogLevel:           "info",
		LogFormat:          "text",
		DefaultPageSize:    "A4",
		DefaultOrientation: "portrait",
		DefaultQuality:     90,
		DefaultCompression: 0,
		MaxFileSize:        50 << 20,
		OutputDir:          ".",
		MetricsPort:        "9090",
	}
}

// Load builds the config from the optional YAML file and the environment.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("DOCFORGE_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.LogLevel = env("DOCFORGE_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = env("DOCFORGE_LOG_FORMAT", cfg.LogFormat)
	cfg.DefaultPageSize = env("DOCFORGE_PAGE_SIZE", cfg.DefaultPageSize)
	cfg.DefaultOrientation = env("DOCFORGE_ORIENTATION", cfg.DefaultOrientation)
	cfg.DefaultQuality = envInt("DOCFORGE_QUALITY", cfg.DefaultQuality)
	cfg.DefaultCompression = envInt("DOCFORGE_COMPRESSION", cfg.DefaultCompression)
	cfg.MaxFileSize = envInt64("DOCFORGE_MAX_FILE_SIZE", cfg.MaxFileSize)
	cfg.OutputDir = env("DOCFORGE_OUTPUT_DIR", cfg.OutputDir)
	cfg.MetricsPort = env("DOCFORGE_METRICS_PORT", cfg.MetricsPort)

	return cfg, nil
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
