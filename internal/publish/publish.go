// Package publish renders a report in several formats and uploads the
// results to the configured store.
package publish

import (
	"bytes"
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gaii/gaii/internal/datasource"
	"github.com/gaii/gaii/pkg/report"
	"github.com/gaii/gaii/pkg/surface"
)

// Published describes one uploaded rendition.
type Published struct {
	Format      surface.Format `json:"format"`
	Name        string         `json:"name"`
	ContentType string         `json:"content_type"`
	Size        int            `json:"size"`
}

// Publisher uploads rendered reports.
type Publisher struct {
	store datasource.Store
}

// New creates a Publisher writing to store.
func New(store datasource.Store) *Publisher {
	return &Publisher{store: store}
}

// FileName is the object name used for a report rendered as f.
func FileName(f surface.Format) string {
	return "report" + f.Extension()
}

// Publish renders rep in every format and uploads the renditions in
// parallel. The first failure cancels the remaining uploads. Results are
// returned in the order of formats.
func (p *Publisher) Publish(ctx context.Context, rep *report.Report, formats ...surface.Format) ([]Published, error) {
	if len(formats) == 0 {
		return nil, eris.New("publish: no formats requested")
	}

	start := time.Now()
	out := make([]Published, len(formats))
	g, ctx := errgroup.WithContext(ctx)

	for i, f := range formats {
		g.Go(func() error {
			r, err := surface.ForFormat(f)
			if err != nil {
				return eris.Wrap(err, "publish: renderer")
			}

			var buf bytes.Buffer
			if err := r.Render(&buf, rep); err != nil {
				return eris.Wrapf(err, "publish: render %s", f)
			}

			name := FileName(f)
			if err := p.store.PutReport(ctx, rep.ID, name, f.ContentType(), buf.Bytes()); err != nil {
				return eris.Wrapf(err, "publish: upload %s", name)
			}

			out[i] = Published{Format: f, Name: name, ContentType: f.ContentType(), Size: buf.Len()}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Info("report published",
		zap.String("report_id", rep.ID),
		zap.Int("formats", len(formats)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return out, nil
}
