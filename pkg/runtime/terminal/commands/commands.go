package commands

import (
	"context"
	"time"

	"github.com/de-tools/sheet-atlas/pkg/models/domain"
	tablesvc "github.com/de-tools/sheet-atlas/pkg/services/tables"
	"github.com/spf13/cobra"
)

const commandTimeout = 60 * time.Second

type Reporter interface {
	Handle(report *domain.Report) error
}

// Env is what every command needs at run time. Both funcs are resolved lazily
// so persistent flags are parsed before the workbook is read.
type Env struct {
	Load     func(ctx context.Context) (tablesvc.Service, error)
	Reporter func() Reporter
}

type reportFunc func(ctx context.Context, svc tablesvc.Service) (*domain.Report, error)

func (e Env) run(cmd *cobra.Command, fn reportFunc) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	svc, err := e.Load(ctx)
	if err != nil {
		return err
	}

	report, err := fn(ctx, svc)
	if err != nil {
		return err
	}
	return e.Reporter().Handle(report)
}
