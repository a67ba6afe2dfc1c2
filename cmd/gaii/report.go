package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaii/gaii/internal/archive"
	"github.com/gaii/gaii/internal/publish"
	"github.com/gaii/gaii/pkg/report"
	"github.com/gaii/gaii/pkg/surface"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		format    string
		outPath   string
		title     string
		topN      int
		doPublish bool
		doArchive bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Assemble and render the full index report",
		Long: `Assembles the report (country table, regional and global rollups,
north/south split, rankings and methodology) and renders it.

With --publish the report is also rendered in every configured format and
uploaded to the dataset store. With --archive it is saved to the Postgres
report archive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := surface.ParseFormat(format)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("top") {
				topN = a.cfg.Report.TopN
			}

			ctx := cmd.Context()
			ds, err := a.dataset(ctx)
			if err != nil {
				return err
			}
			rep := report.Assemble(ds, report.Options{
				Title: firstNonEmpty(title, a.cfg.Report.Title),
				TopN:  topN,
			})

			if err := renderTo(cmd.OutOrStdout(), outPath, f, rep); err != nil {
				return err
			}
			if doPublish {
				if err := a.publishReport(ctx, rep); err != nil {
					return err
				}
			}
			if doArchive {
				if err := a.archiveReport(ctx, rep); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json, markdown or xlsx")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVar(&title, "title", "", "Report title (default: report.title or the index name)")
	cmd.Flags().IntVar(&topN, "top", 10, "Countries per ranking (default: report.top_n)")
	cmd.Flags().BoolVar(&doPublish, "publish", false, "Upload renditions in report.formats to the store")
	cmd.Flags().BoolVar(&doArchive, "archive", false, "Save the report to the Postgres archive")

	return cmd
}

func renderTo(stdout io.Writer, path string, f surface.Format, rep *report.Report) error {
	if f == surface.FormatXLSX && path == "" {
		return fmt.Errorf("xlsx output needs --out")
	}
	r, err := surface.ForFormat(f)
	if err != nil {
		return err
	}
	w, err := output(stdout, path)
	if err != nil {
		return err
	}
	if err := r.Render(w, rep); err != nil {
		w.Close()
		return fmt.Errorf("rendering report: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	if path != "" {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", path)
	}
	return nil
}

func (a *app) publishReport(ctx context.Context, rep *report.Report) error {
	formats := make([]surface.Format, 0, len(a.cfg.Report.Formats))
	for _, name := range a.cfg.Report.Formats {
		f, err := surface.ParseFormat(name)
		if err != nil {
			return err
		}
		formats = append(formats, f)
	}

	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	published, err := publish.New(store).Publish(ctx, rep, formats...)
	if err != nil {
		return err
	}
	for _, p := range published {
		fmt.Fprintf(os.Stderr, "Published %s (%d bytes)\n", p.Name, p.Size)
	}
	return nil
}

func (a *app) archiveReport(ctx context.Context, rep *report.Report) error {
	if a.cfg.Archive.DatabaseURL == "" {
		return fmt.Errorf("--archive needs archive.database_url or DATABASE_URL")
	}
	db, err := archive.Open(ctx, a.cfg.Archive.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if a.cfg.Archive.AutoMigrate {
		if err := archive.AutoMigrate(db); err != nil {
			return err
		}
	}
	if err := archive.NewPostgres(db).Save(ctx, rep); err != nil {
		return err
	}
	zap.L().Info("report archived", zap.String("id", rep.ID))
	fmt.Fprintf(os.Stderr, "Archived report %s\n", rep.ID)
	return nil
}
