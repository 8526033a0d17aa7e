// Package tables owns the process-wide table map and answers queries against it.
package tables

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/de-tools/sheet-atlas/pkg/metrics"
	"github.com/de-tools/sheet-atlas/pkg/models/domain"
	"github.com/de-tools/sheet-atlas/pkg/services/normalize"
	"github.com/de-tools/sheet-atlas/pkg/services/reconstruct"
	"github.com/rs/zerolog"
)

// GridSource supplies the workbook grid and the location it was read from.
type GridSource interface {
	Load(ctx context.Context) (domain.Grid, string, error)
}

// ReloadRecorder persists reload outcomes.
type ReloadRecorder interface {
	Add(ctx context.Context, result domain.ReloadResult) error
}

type Service interface {
	ListTables(ctx context.Context) ([]string, error)
	GetRowLabels(ctx context.Context, table string) ([]string, error)
	SumRow(ctx context.Context, table, row string) (*domain.RowSum, error)
	Reload(ctx context.Context) (*domain.ReloadResult, error)
	Snapshot(ctx context.Context) Snapshot
}

// Snapshot is a read-only view of the loaded state for diagnostics.
type Snapshot struct {
	Location string
	Tables   map[string][]string
	Names    []string
	Sections []domain.Section
}

type state struct {
	tables   *domain.Tables
	sections []domain.Section
	location string
}

type DefaultService struct {
	source   GridSource
	recorder ReloadRecorder

	current  atomic.Pointer[state]
	reloadMu sync.Mutex
	now      func() time.Time
}

type Option func(*DefaultService)

func WithRecorder(r ReloadRecorder) Option {
	return func(s *DefaultService) {
		s.recorder = r
	}
}

func NewService(source GridSource, opts ...Option) *DefaultService {
	s := &DefaultService{
		source: source,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.current.Store(&state{tables: domain.NewTables()})
	return s
}

func (s *DefaultService) load() *state {
	return s.current.Load()
}

func (s *DefaultService) loadedTables() (*domain.Tables, error) {
	tables := s.load().tables
	if tables.Len() == 0 {
		return nil, ErrDataNotLoaded
	}
	return tables, nil
}

func (s *DefaultService) ListTables(_ context.Context) ([]string, error) {
	tables, err := s.loadedTables()
	if err != nil {
		return nil, err
	}
	return tables.Names(), nil
}

func (s *DefaultService) GetRowLabels(_ context.Context, table string) ([]string, error) {
	tables, err := s.loadedTables()
	if err != nil {
		return nil, err
	}
	t, ok := tables.Get(table)
	if !ok {
		return nil, newTableNotFound(table, tables.Names())
	}
	return t.Labels(), nil
}

func (s *DefaultService) SumRow(ctx context.Context, table, row string) (*domain.RowSum, error) {
	logger := zerolog.Ctx(ctx)

	tables, err := s.loadedTables()
	if err != nil {
		metrics.RecordRowSum("not_loaded")
		return nil, err
	}
	t, ok := tables.Get(table)
	if !ok {
		metrics.RecordRowSum("table_not_found")
		return nil, newTableNotFound(table, tables.Names())
	}
	r, ok := t.Row(row)
	if !ok {
		metrics.RecordRowSum("row_not_found")
		return nil, newRowNotFound(table, row, t.Labels())
	}

	result := &domain.RowSum{
		TableName:       table,
		RowLabel:        row,
		ValuesProcessed: len(r.Values),
		NumericValues:   make([]float64, 0, len(r.Values)),
	}
	for _, cell := range r.Values {
		parsed, err := normalize.Parse(cell)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("table", table).
				Str("row", row).
				Str("value", cell.String()).
				Msg("could not convert value to a number, counting it as zero")
			metrics.RecordUnparseable(table)
		}
		result.NumericValues = append(result.NumericValues, parsed.Value)
		result.Sum += parsed.Value
	}

	metrics.RecordRowSum("ok")
	return result, nil
}

// Reload re-reads the grid and swaps in a freshly built table map. A failing
// source leaves an empty map in place and is reported through the result,
// never as an error.
func (s *DefaultService) Reload(ctx context.Context) (*domain.ReloadResult, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	logger := zerolog.Ctx(ctx)
	result := &domain.ReloadResult{StartedAt: s.now()}

	next := &state{tables: domain.NewTables()}
	grid, location, err := s.source.Load(ctx)
	if err != nil {
		msg := err.Error()
		result.Error = &msg
		result.Status = domain.ReloadStatusDegraded
		logger.Error().Err(err).Msg("no workbook grid available, serving an empty table map")
	} else {
		next.location = location
		next.sections = reconstruct.ScanContext(ctx, grid)
		next.tables = reconstruct.Build(ctx, grid, next.sections)
		result.Status = domain.ReloadStatusLoaded
		if next.tables.Len() == 0 {
			logger.Warn().Str("location", location).Msg("no tables were found in the workbook")
		}
	}

	s.current.Store(next)

	result.Location = next.location
	result.TablesLoaded = next.tables.Len()
	result.TableNames = next.tables.Names()
	result.FinishedAt = s.now()

	metrics.RecordReload(string(result.Status), result.TablesLoaded, result.FinishedAt.Sub(result.StartedAt))
	logger.Info().
		Str("location", result.Location).
		Int("tables", result.TablesLoaded).
		Strs("table_names", result.TableNames).
		Msg("table map reloaded")

	if s.recorder != nil {
		if err := s.recorder.Add(ctx, *result); err != nil {
			logger.Error().Err(err).Msg("failed to record reload")
		}
	}

	return result, nil
}

func (s *DefaultService) Snapshot(_ context.Context) Snapshot {
	st := s.load()
	snap := Snapshot{
		Location: st.location,
		Tables:   make(map[string][]string, st.tables.Len()),
		Names:    st.tables.Names(),
		Sections: st.sections,
	}
	for _, t := range st.tables.All() {
		snap.Tables[t.Name] = t.Labels()
	}
	return snap
}
