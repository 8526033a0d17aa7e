package workbook

import (
	"context"
	"errors"

	"github.com/de-tools/sheet-atlas/pkg/models/domain"
)

// Source supplies a grid and the location it came from.
type Source interface {
	Load(ctx context.Context) (domain.Grid, string, error)
}

// Chain tries each source in order and returns the first grid found.
type Chain []Source

func (c Chain) Load(ctx context.Context) (domain.Grid, string, error) {
	loadErr := &LoadError{}
	for _, src := range c {
		grid, location, err := src.Load(ctx)
		if err == nil {
			return grid, location, nil
		}

		var nested *LoadError
		if errors.As(err, &nested) {
			loadErr.Attempts = append(loadErr.Attempts, nested.Attempts...)
			continue
		}
		loadErr.Attempts = append(loadErr.Attempts, Attempt{Location: location, Err: err})
	}
	return nil, "", loadErr
}
