package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gaii/gaii/pkg/country"
)

func newDatasetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Validate and upload dataset documents",
	}
	cmd.AddCommand(newDatasetValidateCmd(), newDatasetPushCmd(a))
	return cmd
}

func newDatasetValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Parse a dataset document and report its country count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := country.LoadFile(args[0])
			if err != nil {
				return err
			}
			m := ds.Meta()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d countries (source %q, updated %s)\n",
				firstNonEmpty(m.Name, args[0]), ds.Len(), m.Source, m.LastUpdated)
			return nil
		},
	}
}

func newDatasetPushCmd(a *app) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "push <file>",
		Short: "Validate a dataset document and upload it to the store",
		Long: `Parses the document first so that only valid datasets reach the store.
The object key defaults to the file's base name; the API serves it under
?dataset=<key>.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading dataset: %w", err)
			}
			ds, err := country.Parse(raw, country.FormatFromPath(path))
			if err != nil {
				return err
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			key = firstNonEmpty(key, filepath.Base(path))
			if err := store.PutDataset(cmd.Context(), key, raw); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pushed %s (%d countries) as %s\n", path, ds.Len(), key)
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Object key (default: file base name)")
	return cmd
}
