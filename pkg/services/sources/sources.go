// Package sources turns workbook configuration into a grid source chain.
package sources

import (
	"context"
	"fmt"

	"github.com/de-tools/sheet-atlas/pkg/services/config"
	"github.com/de-tools/sheet-atlas/pkg/store/s3"
	"github.com/de-tools/sheet-atlas/pkg/store/workbook"
)

// ClientFactory creates the S3 client used for s3:// locations.
type ClientFactory func(ctx context.Context, settings s3.Settings) (s3.GetObjectAPI, error)

func defaultClientFactory(ctx context.Context, settings s3.Settings) (s3.GetObjectAPI, error) {
	return s3.NewClient(ctx, settings)
}

type Builder struct {
	newClient ClientFactory
}

func NewBuilder(factory ClientFactory) *Builder {
	if factory == nil {
		factory = defaultClientFactory
	}
	return &Builder{newClient: factory}
}

// Build returns a chain that tries the configured S3 location first, then every
// configured path in order. Consecutive local paths share one FileSource. With
// nothing configured the default discovery paths are used.
func (b *Builder) Build(ctx context.Context, cfg config.WorkbookConfig) (workbook.Chain, error) {
	reg := workbook.DefaultRegistry(cfg.Sheet)
	settings := s3.Settings{
		Profile:  cfg.S3.Profile,
		Region:   cfg.S3.Region,
		Endpoint: cfg.S3.Endpoint,
	}

	var (
		chain  workbook.Chain
		local  []string
		client s3.GetObjectAPI
	)

	remote := func(raw string) error {
		loc, err := s3.ParseLocation(raw)
		if err != nil {
			return err
		}
		if client == nil {
			client, err = b.newClient(ctx, settings)
			if err != nil {
				return fmt.Errorf("failed to create S3 client: %w", err)
			}
		}
		chain = append(chain, s3.NewSource(client, loc, reg))
		return nil
	}

	flush := func() {
		if len(local) > 0 {
			chain = append(chain, workbook.NewFileSource(local, reg))
			local = nil
		}
	}

	if cfg.S3.Location != "" {
		if err := remote(cfg.S3.Location); err != nil {
			return nil, err
		}
	}

	for _, path := range cfg.Paths {
		if !s3.IsLocation(path) {
			local = append(local, path)
			continue
		}
		flush()
		if err := remote(path); err != nil {
			return nil, err
		}
	}
	flush()

	if len(cfg.Paths) == 0 {
		chain = append(chain, workbook.NewFileSource(nil, reg))
	}

	return chain, nil
}
