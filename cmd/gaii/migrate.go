package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaii/gaii/internal/archive"
)

func newMigrateCmd(a *app) *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply report archive migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			url := firstNonEmpty(databaseURL, a.cfg.Archive.DatabaseURL)
			if url == "" {
				return fmt.Errorf("no database: pass --database-url or set DATABASE_URL")
			}

			db, err := archive.Open(cmd.Context(), url)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := archive.AutoMigrate(db); err != nil {
				return err
			}
			version, dirty, err := archive.SchemaVersion(db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archive schema at version %d (dirty: %t)\n", version, dirty)
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Postgres URL (default: archive.database_url)")
	return cmd
}
