package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/gaii/gaii/internal/api"
	"github.com/gaii/gaii/internal/archive"
	"github.com/gaii/gaii/internal/datasource"
	"github.com/gaii/gaii/internal/metrics"
)

func newServeCmd(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start a local read API over the configured dataset",
		Long: `Starts the read API on localhost with an in-memory report archive.
Use gaiid for a deployment backed by Postgres.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			loader := datasource.NewLoader(store, a.cfg.Dataset)

			m := metrics.New(prometheus.NewRegistry())
			cache := api.NewDatasetCache(loader, a.cfg.Server.CacheSize, m)
			h := api.NewHandler(cache, archive.NewMemory(), api.Options{
				Title:   a.cfg.Report.Title,
				TopN:    a.cfg.Report.TopN,
				Metrics: m,
			})

			mux := http.NewServeMux()
			h.RegisterRoutes(mux)

			port = firstNonEmpty(port, a.cfg.Server.Port)
			addr := "localhost:" + port
			fmt.Fprintf(os.Stderr, "GAII API serving %s on http://%s/api/v1/\n", firstNonEmpty(a.cfg.Dataset.Path, a.cfg.Dataset.Key), addr)
			return http.ListenAndServe(addr, api.CORS(a.cfg.Server.AllowedOrigins)(api.Instrument(m)(mux)))
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Port to serve on (default: server.port)")
	return cmd
}
