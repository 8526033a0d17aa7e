package workbook

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/sheet-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// DefaultPaths mirrors where the capital-budgeting workbook is usually dropped.
var DefaultPaths = []string{
	"venv/Data/capbudg.xls",
	"Data/capbudg.xls",
	"capbudg.xls",
	"venv/Data/capbudg.xlsx",
	"Data/capbudg.xlsx",
	"capbudg.xlsx",
	"venv/Data/capbudg.csv",
	"Data/capbudg.csv",
	"capbudg.csv",
}

// FileSource loads the first candidate path that exists and decodes cleanly.
type FileSource struct {
	paths    []string
	registry Registry
}

func NewFileSource(paths []string, registry Registry) *FileSource {
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	return &FileSource{paths: paths, registry: registry}
}

func (s *FileSource) Paths() []string {
	return s.paths
}

func (s *FileSource) Load(ctx context.Context) (domain.Grid, string, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Int("candidates", len(s.paths)).Msg("looking for workbook")

	loadErr := &LoadError{}
	for _, path := range s.paths {
		grid, err := s.loadPath(ctx, path)
		if err != nil {
			logger.Debug().Err(err).Str("path", path).Msg("workbook candidate rejected")
			loadErr.Attempts = append(loadErr.Attempts, Attempt{Location: path, Err: err})
			continue
		}

		logger.Info().
			Str("path", path).
			Int("rows", len(grid)).
			Int("columns", grid.Width()).
			Msg("workbook loaded")
		return grid, path, nil
	}

	if wd, err := os.Getwd(); err == nil {
		logger.Warn().Str("cwd", wd).Msg("no workbook found in any candidate location")
	}
	return nil, "", loadErr
}

func (s *FileSource) loadPath(ctx context.Context, path string) (domain.Grid, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	decoder, err := s.registry.Lookup(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	grid, err := decoder.Decode(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return grid, nil
}
