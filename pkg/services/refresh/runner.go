// Package refresh periodically reloads the table map in the background.
package refresh

import (
	"context"
	"time"

	"github.com/de-tools/sheet-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

type Reloader interface {
	Reload(ctx context.Context) (*domain.ReloadResult, error)
}

type RunnerConfig struct {
	Interval time.Duration
}

type Runner struct {
	reloader Reloader
	config   RunnerConfig
	done     chan struct{}
	results  chan domain.ReloadResult
}

func NewRunner(reloader Reloader, config RunnerConfig) *Runner {
	return &Runner{
		reloader: reloader,
		config:   config,
		done:     make(chan struct{}),
		results:  make(chan domain.ReloadResult, 16),
	}
}

func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Results reports every completed reload. Results are dropped when nobody reads them.
func (r *Runner) Results() <-chan domain.ReloadResult {
	return r.results
}

// Run reloads on every tick until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	logger := zerolog.Ctx(ctx).With().Dur("interval", r.config.Interval).Logger()
	defer close(r.done)
	defer close(r.results)

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	logger.Info().Msg("periodic reload started")
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("periodic reload stopped")
			return
		case <-ticker.C:
			result, err := r.reloader.Reload(logger.WithContext(ctx))
			if err != nil {
				logger.Error().Err(err).Msg("periodic reload failed")
				continue
			}

			select {
			case r.results <- *result:
			default:
			}
		}
	}
}
