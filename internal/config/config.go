package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr        string        `yaml:"http_addr"`
	UploadDir       string        `yaml:"upload_dir"`
	PublicBaseURL   string        `yaml:"public_base_url"`
	MaxFileSize     int64         `yaml:"max_file_size"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Log             LogConfig     `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() *Config {
	return &Config{
		HTTPAddr:        ":8080",
		UploadDir:       "./uploads",
		MaxFileSize:     10 << 20,
		ShutdownTimeout: 5 * time.Second,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (FILEDROP_CONFIG when path is empty, skipped when both are empty), then
// FILEDROP_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("FILEDROP_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	c.HTTPAddr = getEnv("FILEDROP_HTTP_ADDR", c.HTTPAddr)
	c.UploadDir = getEnv("FILEDROP_UPLOAD_DIR", c.UploadDir)
	c.PublicBaseURL = getEnv("FILEDROP_PUBLIC_BASE_URL", c.PublicBaseURL)
	c.Log.Level = getEnv("FILEDROP_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("FILEDROP_LOG_FORMAT", c.Log.Format)

	if v := getEnv("FILEDROP_MAX_FILE_SIZE", ""); v != "" {
		maxFileSize, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid FILEDROP_MAX_FILE_SIZE: %w", err)
		}
		c.MaxFileSize = maxFileSize
	}

	if v := getEnv("FILEDROP_SHUTDOWN_TIMEOUT", ""); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid FILEDROP_SHUTDOWN_TIMEOUT: %w", err)
		}
		c.ShutdownTimeout = timeout
	}

	return nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.UploadDir) == "" {
		return errors.New("upload directory must be set")
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive, got %d", c.MaxFileSize)
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown timeout must not be negative, got %s", c.ShutdownTimeout)
	}
	if c.PublicBaseURL != "" {
		u, err := url.Parse(c.PublicBaseURL)
		if err != nil {
			return fmt.Errorf("invalid public base URL: %w", err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("public base URL must be an absolute http(s) URL, got %q", c.PublicBaseURL)
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.Log.Format)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
