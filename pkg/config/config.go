// Package config handles loading and managing GAII configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Dataset storage backends.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
	BackendGCS   = "gcs"
)

// Config is the top-level configuration for GAII.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset"`
	Report  ReportConfig  `yaml:"report"`
	Archive ArchiveConfig `yaml:"archive"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
}

// DatasetConfig selects where dataset documents come from and where
// rendered reports are published.
type DatasetConfig struct {
	Path     string `yaml:"path"`    // local file; overrides the store when set
	Backend  string `yaml:"backend"` // local, s3, gcs
	Bucket   string `yaml:"bucket"`
	Key      string `yaml:"key"` // default dataset object key
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"` // S3-compatible endpoint, e.g. MinIO
	LocalDir string `yaml:"local_dir"`
}

// ReportConfig controls report assembly and rendering.
type ReportConfig struct {
	Title   string   `yaml:"title"`
	TopN    int      `yaml:"top_n"`
	Formats []string `yaml:"formats"` // formats written by --publish
}

// ArchiveConfig points at the Postgres report archive.
type ArchiveConfig struct {
	DatabaseURL string `yaml:"database_url"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// ServerConfig controls the read API.
type ServerConfig struct {
	Port           string   `yaml:"port"`
	APIKey         string   `yaml:"api_key"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	CacheSize      int      `yaml:"cache_size"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Backend:  BackendLocal,
			Key:      "gaii.yaml",
			LocalDir: CacheDir(),
		},
		Report: ReportConfig{
			TopN:    10,
			Formats: []string{"json", "markdown"},
		},
		Archive: ArchiveConfig{
			AutoMigrate: true,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"*"},
			CacheSize:      8,
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overlays environment variables on cfg. Unset variables leave the
// file or default value in place.
func (c *Config) ApplyEnv() {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.APIKey, "GAII_API_KEY")
	setString(&c.Archive.DatabaseURL, "DATABASE_URL")
	setString(&c.Dataset.Path, "GAII_DATASET_PATH")
	setString(&c.Dataset.Backend, "GAII_DATASET_BACKEND")
	setString(&c.Dataset.Bucket, "GAII_DATASET_BUCKET")
	setString(&c.Dataset.Key, "GAII_DATASET_KEY")
	setString(&c.Dataset.Region, "GAII_DATASET_REGION")
	setString(&c.Dataset.Endpoint, "GAII_DATASET_ENDPOINT")
	setString(&c.Dataset.LocalDir, "GAII_DATASET_DIR")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	if v, ok := os.LookupEnv("GAII_ALLOWED_ORIGINS"); ok {
		c.Server.AllowedOrigins = splitList(v)
	}
	if v, ok := os.LookupEnv("GAII_CACHE_SIZE"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Server.CacheSize = n
		}
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Dataset.Backend {
	case BackendLocal, BackendS3, BackendGCS:
	default:
		return fmt.Errorf("dataset.backend: unknown backend %q", c.Dataset.Backend)
	}
	if (c.Dataset.Backend == BackendS3 || c.Dataset.Backend == BackendGCS) && c.Dataset.Bucket == "" {
		return fmt.Errorf("dataset.bucket: required for %s backend", c.Dataset.Backend)
	}
	if c.Report.TopN <= 0 {
		return fmt.Errorf("report.top_n: must be positive, got %d", c.Report.TopN)
	}
	for _, f := range c.Report.Formats {
		switch strings.ToLower(f) {
		case "text", "json", "markdown", "md", "xlsx":
		default:
			return fmt.Errorf("report.formats: unknown format %q", f)
		}
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format: must be json or console, got %q", c.Log.Format)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Server.CacheSize <= 0 {
		return fmt.Errorf("server.cache_size: must be positive, got %d", c.Server.CacheSize)
	}
	return nil
}

// InitLogger builds the global zap logger from cfg.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	return nil
}

// FindConfigFile looks for .gaii/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".gaii", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// CacheDir returns the local store directory, ~/.cache/gaii.
func CacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to temp dir if HOME isn't available
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "gaii")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
