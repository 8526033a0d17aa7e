package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/de-tools/sheet-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReloader struct {
	mock.Mock
}

func (m *mockReloader) Reload(ctx context.Context) (*domain.ReloadResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReloadResult), args.Error(1)
}

func TestRunner_ReloadsUntilCancelled(t *testing.T) {
	reloader := new(mockReloader)
	reloader.On("Reload", mock.Anything).Return(&domain.ReloadResult{
		Status:       domain.ReloadStatusLoaded,
		TablesLoaded: 3,
	}, nil)

	runner := NewRunner(reloader, RunnerConfig{Interval: 5 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	go runner.Run(ctx)

	select {
	case result := <-runner.Results():
		assert.Equal(t, 3, result.TablesLoaded)
	case <-time.After(2 * time.Second):
		t.Fatal("no reload happened")
	}

	cancel()
	select {
	case <-runner.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}
}

func TestRunner_KeepsGoingAfterErrors(t *testing.T) {
	reloader := new(mockReloader)
	reloader.On("Reload", mock.Anything).Return(nil, errors.New("boom")).Once()
	reloader.On("Reload", mock.Anything).Return(&domain.ReloadResult{Status: domain.ReloadStatusDegraded}, nil)

	runner := NewRunner(reloader, RunnerConfig{Interval: 5 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go runner.Run(ctx)

	select {
	case result := <-runner.Results():
		require.Equal(t, domain.ReloadStatusDegraded, result.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("no reload happened")
	}
}
