package archive

import (
	"context"
	"slices"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/gaii/gaii/pkg/report"
)

// Memory is an in-process Archive for servers running without a database.
type Memory struct {
	mu      sync.RWMutex
	reports map[string]*report.Report
	order   []string // insertion order
}

// NewMemory creates an empty in-memory archive.
func NewMemory() *Memory {
	return &Memory{reports: make(map[string]*report.Report)}
}

func (m *Memory) Save(ctx context.Context, rep *report.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reports[rep.ID]; ok {
		return nil
	}
	m.reports[rep.ID] = rep
	m.order = append(m.order, rep.ID)
	return nil
}

func (m *Memory) Get(ctx context.Context, id string) (*report.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rep, ok := m.reports[id]
	if !ok {
		return nil, eris.Wrapf(ErrNotFound, "archive: report %s", id)
	}
	return rep, nil
}

func (m *Memory) Latest(ctx context.Context) (*report.Report, error) {
	sums, _ := m.List(ctx, 1)
	if len(sums) == 0 {
		return nil, eris.Wrap(ErrNotFound, "archive: no reports")
	}
	return m.Get(ctx, sums[0].ID)
}

func (m *Memory) List(ctx context.Context, limit int) ([]report.Summary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	m.mu.RLock()
	out := make([]report.Summary, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.reports[id].Summary())
	}
	m.mu.RUnlock()

	// newest first; later saves win ties
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b report.Summary) int {
		return b.GeneratedAt.Compare(a.GeneratedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
