// Command gaiid is the GAII read API service.
// It serves country, region and ranking endpoints over the configured
// dataset store, the report archive, metrics and a health check.
package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/gaii/gaii/internal/api"
	"github.com/gaii/gaii/internal/archive"
	"github.com/gaii/gaii/internal/datasource"
	"github.com/gaii/gaii/internal/metrics"
	"github.com/gaii/gaii/internal/publish"
	"github.com/gaii/gaii/pkg/config"
	"github.com/gaii/gaii/pkg/surface"
)

func loadConfig() (*config.Config, error) {
	path := os.Getenv("GAII_CONFIG")
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(wd)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zap.L().Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := datasource.NewFromConfig(ctx, cfg.Dataset)
	if err != nil {
		zap.L().Fatal("open dataset store", zap.Error(err))
	}

	db, arch, err := openArchive(ctx, cfg.Archive)
	if err != nil {
		zap.L().Fatal("open archive", zap.Error(err))
	}
	if db != nil {
		defer db.Close()
	}

	formats := make([]surface.Format, 0, len(cfg.Report.Formats))
	for _, name := range cfg.Report.Formats {
		f, err := surface.ParseFormat(name)
		if err != nil {
			zap.L().Fatal("report formats", zap.Error(err))
		}
		formats = append(formats, f)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	cache := api.NewDatasetCache(datasource.NewLoader(store, cfg.Dataset), cfg.Server.CacheSize, m)
	handler := api.NewHandler(cache, arch, api.Options{
		Title:     cfg.Report.Title,
		TopN:      cfg.Report.TopN,
		APIKey:    cfg.Server.APIKey,
		Metrics:   m,
		Publisher: publish.New(store),
		Formats:   formats,
	})

	// Set up HTTP routes
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           api.CORS(cfg.Server.AllowedOrigins)(api.Instrument(m)(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.L().Info("starting gaiid", zap.String("port", cfg.Server.Port), zap.Bool("postgres", db != nil))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("shutdown", zap.Error(err))
	}
}

// openArchive connects to Postgres when a database URL is configured and
// falls back to an in-memory archive otherwise.
func openArchive(ctx context.Context, cfg config.ArchiveConfig) (*sql.DB, archive.Archive, error) {
	if cfg.DatabaseURL == "" {
		zap.L().Warn("no database configured, archived reports are kept in memory")
		return nil, archive.NewMemory(), nil
	}

	db, err := archive.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if cfg.AutoMigrate {
		if err := archive.AutoMigrate(db); err != nil {
			db.Close()
			return nil, nil, err
		}
	}
	return db, archive.NewPostgres(db), nil
}
