package commands

import (
	"context"

	"github.com/de-tools/sheet-atlas/pkg/adapters"
	"github.com/de-tools/sheet-atlas/pkg/models/domain"
	tablesvc "github.com/de-tools/sheet-atlas/pkg/services/tables"
	"github.com/spf13/cobra"
)

func NewTablesCmd(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables detected in the workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.run(cmd, func(ctx context.Context, svc tablesvc.Service) (*domain.Report, error) {
				if _, err := svc.ListTables(ctx); err != nil {
					return nil, err
				}
				snap := svc.Snapshot(ctx)
				return adapters.MapTablesToReport(snap.Location, snap.Tables, snap.Names), nil
			})
		},
	}
}

func NewSectionsCmd(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "Show where each table marker was found",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.run(cmd, func(ctx context.Context, svc tablesvc.Service) (*domain.Report, error) {
				snap := svc.Snapshot(ctx)
				return adapters.MapSectionsToReport(snap.Location, snap.Sections), nil
			})
		},
	}
}
