package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gaii/gaii/data"
	"github.com/gaii/gaii/internal/datasource"
	"github.com/gaii/gaii/pkg/config"
	"github.com/gaii/gaii/pkg/country"
)

// app carries state shared by every subcommand once the root command has
// loaded configuration.
type app struct {
	configPath  string
	datasetPath string
	logLevel    string

	cfg   *config.Config
	store datasource.Store
}

func (a *app) init() error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.datasetPath != "" {
		cfg.Dataset.Path = a.datasetPath
	}
	cfg.Log.Level = firstNonEmpty(a.logLevel, cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// openStore connects to the configured dataset store on first use.
func (a *app) openStore(ctx context.Context) (datasource.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := datasource.NewFromConfig(ctx, a.cfg.Dataset)
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

// dataset loads the dataset selected by --dataset or the config.
func (a *app) dataset(ctx context.Context) (*country.Dataset, error) {
	if a.cfg.Dataset.Path != "" {
		return country.LoadFile(a.cfg.Dataset.Path)
	}
	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	return datasource.NewLoader(store, a.cfg.Dataset).Load(ctx, data.DefaultName)
}

// output opens path for writing, or returns stdout when path is empty.
func output(stdout io.Writer, path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
