// Package main provides the gaii CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaii/gaii/pkg/config"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "gaii",
		Short: "Global AI Inequality Index",
		Long: `gaii scores countries on AI access inequality, rolls the scores up by
region and population, ranks countries and renders reports.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}

	f := rootCmd.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "Path to config file (default: search for .gaii/config.yaml)")
	f.StringVar(&a.datasetPath, "dataset", "", "Path to a dataset file (overrides the configured store)")
	f.StringVar(&a.logLevel, "log-level", "", "Log level (overrides config)")

	rootCmd.AddCommand(
		newCountriesCmd(a),
		newRollupCmd(a),
		newRankCmd(a),
		newReportCmd(a),
		newMigrateCmd(a),
		newDatasetCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func loadConfig(path string) (*config.Config, error) {
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
	return cfg, nil
}
