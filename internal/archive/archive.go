// Package archive keeps the history of generated reports in Postgres.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/lib/pq"
	"github.com/rotisserie/eris"

	"github.com/gaii/gaii/pkg/report"
	"github.com/gaii/gaii/pkg/scoring"
)

// ErrNotFound is returned when no archived report matches.
var ErrNotFound = errors.New("report not found")

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Archive is the report history. Postgres and Memory implement it.
type Archive interface {
	Save(ctx context.Context, rep *report.Report) error
	Get(ctx context.Context, id string) (*report.Report, error)
	List(ctx context.Context, limit int) ([]report.Summary, error)
	Latest(ctx context.Context) (*report.Report, error)
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "archive: open database")
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "archive: ping database")
	}
	return db, nil
}

// Postgres stores reports as JSONB alongside their summary columns.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a Postgres archive over an open database.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Save inserts rep. Saving the same report twice is a no-op.
func (p *Postgres) Save(ctx context.Context, rep *report.Report) error {
	body, err := json.Marshal(rep)
	if err != nil {
		return eris.Wrap(err, "archive: marshal report")
	}

	s := rep.Summary()
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO reports (id, title, generated_at, dataset_name, country_count, weighted_score, grade, gap, body)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO NOTHING`,
		s.ID, s.Title, s.GeneratedAt, s.DatasetName, s.CountryCount, s.WeightedScore, string(s.Grade), s.Gap, body,
	)
	if err != nil {
		return eris.Wrapf(err, "archive: save report %s", rep.ID)
	}
	return nil
}

// Get returns the archived report with the given ID.
func (p *Postgres) Get(ctx context.Context, id string) (*report.Report, error) {
	return p.one(ctx, `SELECT body FROM reports WHERE id = $1`, id)
}

// Latest returns the most recently generated report.
func (p *Postgres) Latest(ctx context.Context) (*report.Report, error) {
	return p.one(ctx, `SELECT body FROM reports ORDER BY generated_at DESC LIMIT 1`)
}

func (p *Postgres) one(ctx context.Context, query string, args ...any) (*report.Report, error) {
	var body []byte
	err := p.db.QueryRowContext(ctx, query, args...).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrap(ErrNotFound, "archive: get report")
	}
	if err != nil {
		return nil, eris.Wrap(err, "archive: get report")
	}

	var rep report.Report
	if err := json.Unmarshal(body, &rep); err != nil {
		return nil, eris.Wrap(err, "archive: unmarshal report")
	}
	return &rep, nil
}

// List returns report summaries, newest first.
func (p *Postgres) List(ctx context.Context, limit int) ([]report.Summary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := p.db.QueryContext(ctx,
		`SELECT id, title, generated_at, dataset_name, country_count, weighted_score, grade, gap
		 FROM reports ORDER BY generated_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "archive: list reports")
	}
	defer rows.Close()

	out := []report.Summary{}
	for rows.Next() {
		var s report.Summary
		var grade string
		if err := rows.Scan(&s.ID, &s.Title, &s.GeneratedAt, &s.DatasetName, &s.CountryCount, &s.WeightedScore, &grade, &s.Gap); err != nil {
			return nil, eris.Wrap(err, "archive: scan report")
		}
		s.Grade = scoring.Grade(grade)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "archive: iterate reports")
	}
	return out, nil
}

// Ping checks the database connection.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
