package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dataset.Backend != BackendLocal {
		t.Errorf("expected default backend local, got %q", cfg.Dataset.Backend)
	}
	if cfg.Report.TopN != 10 {
		t.Errorf("expected default top_n 10, got %d", cfg.Report.TopN)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Server.Port)
	}
	if !strings.HasSuffix(cfg.Dataset.LocalDir, filepath.Join(".cache", "gaii")) {
		t.Errorf("expected local dir under .cache/gaii, got %q", cfg.Dataset.LocalDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "non-existent file returns defaults",
			yaml: "", // signal: don't create a file
			check: func(t *testing.T, cfg *Config) {
				if cfg.Report.TopN != 10 {
					t.Errorf("expected default top_n 10, got %d", cfg.Report.TopN)
				}
			},
		},
		{
			name: "valid YAML overrides defaults",
			yaml: `
dataset:
  backend: s3
  bucket: gaii-data
  key: datasets/2025.yaml
  endpoint: http://localhost:9000
report:
  top_n: 5
  formats: [json, xlsx]
archive:
  database_url: postgres://localhost/gaii
log:
  level: debug
  format: json
server:
  allowed_origins:
    - https://gaii.example.org
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Dataset.Backend != BackendS3 || cfg.Dataset.Bucket != "gaii-data" {
					t.Errorf("expected s3/gaii-data, got %q/%q", cfg.Dataset.Backend, cfg.Dataset.Bucket)
				}
				if cfg.Report.TopN != 5 {
					t.Errorf("expected top_n 5, got %d", cfg.Report.TopN)
				}
				if len(cfg.Report.Formats) != 2 || cfg.Report.Formats[1] != "xlsx" {
					t.Errorf("expected formats [json xlsx], got %v", cfg.Report.Formats)
				}
				if cfg.Archive.DatabaseURL != "postgres://localhost/gaii" {
					t.Errorf("unexpected database url %q", cfg.Archive.DatabaseURL)
				}
				if !cfg.Archive.AutoMigrate {
					t.Error("expected auto_migrate default to survive a partial archive section")
				}
				if cfg.Server.Port != "8080" {
					t.Errorf("expected default port to survive, got %q", cfg.Server.Port)
				}
				if len(cfg.Server.AllowedOrigins) != 1 {
					t.Errorf("expected one allowed origin, got %v", cfg.Server.AllowedOrigins)
				}
			},
		},
		{
			name:    "invalid YAML returns error",
			yaml:    "{{invalid yaml",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")

			if tc.yaml == "" {
				// Don't create file - test loading non-existent path
				cfg, err := Load(path)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				tc.check(t, cfg)
				return
			}

			if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
				t.Fatalf("write test config: %v", err)
			}

			cfg, err := Load(path)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.check != nil {
				tc.check(t, cfg)
			}
		})
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dataset.Key != "gaii.yaml" {
		t.Errorf("expected default key, got %q", cfg.Dataset.Key)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GAII_API_KEY", "secret")
	t.Setenv("DATABASE_URL", "postgres://db/gaii")
	t.Setenv("GAII_DATASET_BACKEND", "gcs")
	t.Setenv("GAII_DATASET_BUCKET", "bucket")
	t.Setenv("GAII_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("GAII_CACHE_SIZE", "3")
	t.Setenv("LOG_LEVEL", "")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.Server.Port)
	}
	if cfg.Server.APIKey != "secret" {
		t.Errorf("expected api key from env, got %q", cfg.Server.APIKey)
	}
	if cfg.Archive.DatabaseURL != "postgres://db/gaii" {
		t.Errorf("unexpected database url %q", cfg.Archive.DatabaseURL)
	}
	if cfg.Dataset.Backend != BackendGCS || cfg.Dataset.Bucket != "bucket" {
		t.Errorf("expected gcs/bucket, got %q/%q", cfg.Dataset.Backend, cfg.Dataset.Bucket)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Server.CacheSize != 3 {
		t.Errorf("expected cache size 3, got %d", cfg.Server.CacheSize)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("empty env var should keep default level, got %q", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errSub string
	}{
		{"unknown backend", func(c *Config) { c.Dataset.Backend = "ftp" }, "dataset.backend"},
		{"s3 without bucket", func(c *Config) { c.Dataset.Backend = BackendS3 }, "dataset.bucket"},
		{"zero top_n", func(c *Config) { c.Report.TopN = 0 }, "report.top_n"},
		{"unknown format", func(c *Config) { c.Report.Formats = []string{"pdf"} }, "report.formats"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"zero cache", func(c *Config) { c.Server.CacheSize = 0 }, "server.cache_size"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.errSub) {
				t.Errorf("error %q should mention %q", err, tc.errSub)
			}
		})
	}
}

func TestInitLogger(t *testing.T) {
	defer zap.ReplaceGlobals(zap.NewNop())

	if err := InitLogger(LogConfig{Level: "debug", Format: "json"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !zap.L().Core().Enabled(zap.DebugLevel) {
		t.Error("expected debug level enabled")
	}
	if err := InitLogger(LogConfig{Level: "nope", Format: "console"}); err == nil {
		t.Error("expected error for bad level")
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Run("found in current directory", func(t *testing.T) {
		root := t.TempDir()
		configDir := filepath.Join(root, ".gaii")
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			t.Fatalf("create config dir: %v", err)
		}
		configPath := filepath.Join(configDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		got := FindConfigFile(root)
		if got != configPath {
			t.Errorf("FindConfigFile = %q, want %q", got, configPath)
		}
	})

	t.Run("found in parent directory", func(t *testing.T) {
		root := t.TempDir()
		configDir := filepath.Join(root, ".gaii")
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			t.Fatalf("create config dir: %v", err)
		}
		configPath := filepath.Join(configDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		sub := filepath.Join(root, "a", "b", "c")
		if err := os.MkdirAll(sub, 0o755); err != nil {
			t.Fatalf("create sub: %v", err)
		}

		got := FindConfigFile(sub)
		if got != configPath {
			t.Errorf("FindConfigFile = %q, want %q", got, configPath)
		}
	})

	t.Run("not found", func(t *testing.T) {
		root := t.TempDir()
		got := FindConfigFile(root)
		if got != "" {
			t.Errorf("FindConfigFile = %q, want empty", got)
		}
	})
}
