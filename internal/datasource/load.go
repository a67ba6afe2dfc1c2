package datasource

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gaii/gaii/data"
	"github.com/gaii/gaii/pkg/config"
	"github.com/gaii/gaii/pkg/country"
)

// NewFromConfig picks the Store backend named by cfg.Backend.
func NewFromConfig(ctx context.Context, cfg config.DatasetConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendS3:
		return NewS3Store(ctx, S3Config{
			Bucket:   cfg.Bucket,
			Region:   cfg.Region,
			Endpoint: cfg.Endpoint,
		})
	case config.BackendGCS:
		return NewGCSStore(ctx, cfg.Bucket)
	case config.BackendLocal, "":
		return NewLocalStore(cfg.LocalDir), nil
	default:
		return nil, eris.Errorf("datasource: unknown backend %q", cfg.Backend)
	}
}

// Load fetches a dataset document from store and builds it. The key's
// extension selects YAML or JSON.
func Load(ctx context.Context, store Store, key string) (*country.Dataset, error) {
	raw, err := store.GetDataset(ctx, key)
	if err != nil {
		return nil, eris.Wrapf(err, "datasource: fetch %s", key)
	}
	ds, err := country.Parse(raw, country.FormatFromPath(key))
	if err != nil {
		return nil, eris.Wrapf(err, "datasource: parse %s", key)
	}
	return ds, nil
}

// Loader resolves dataset names. The default name resolves, in order, to
// Path, to DefaultKey in Store, and finally to the embedded dataset.
// Any other name is a key in Store.
type Loader struct {
	Store      Store
	Path       string
	DefaultKey string
}

// NewLoader builds a Loader from the dataset config.
func NewLoader(store Store, cfg config.DatasetConfig) *Loader {
	return &Loader{Store: store, Path: cfg.Path, DefaultKey: cfg.Key}
}

// Load resolves name to a dataset.
func (l *Loader) Load(ctx context.Context, name string) (*country.Dataset, error) {
	if name != "" && name != data.DefaultName {
		if l.Store == nil {
			return nil, eris.Wrapf(ErrNotFound, "datasource: no store configured for dataset %q", name)
		}
		return Load(ctx, l.Store, name)
	}

	if l.Path != "" {
		ds, err := country.LoadFile(l.Path)
		if err != nil {
			return nil, eris.Wrapf(err, "datasource: load %s", l.Path)
		}
		return ds, nil
	}

	if l.Store != nil && l.DefaultKey != "" {
		ds, err := Load(ctx, l.Store, l.DefaultKey)
		if err == nil {
			return ds, nil
		}
		if !eris.Is(err, ErrNotFound) {
			return nil, err
		}
		zap.L().Debug("default dataset not in store, using embedded copy", zap.String("key", l.DefaultKey))
	}

	ds, err := data.Default()
	if err != nil {
		return nil, eris.Wrap(err, "datasource: embedded dataset")
	}
	return ds, nil
}
