package commands

import (
	"context"

	"github.com/de-tools/sheet-atlas/pkg/adapters"
	"github.com/de-tools/sheet-atlas/pkg/models/domain"
	tablesvc "github.com/de-tools/sheet-atlas/pkg/services/tables"
	"github.com/spf13/cobra"
)

type RowsCmd struct {
	table string
}

func NewRowsCmd(env Env) *cobra.Command {
	rc := &RowsCmd{}
	cmd := &cobra.Command{
		Use:   "rows",
		Short: "List the row labels of a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.run(cmd, rc.report)
		},
	}

	cmd.Flags().StringVar(&rc.table, "table", "", "Table name, e.g. \"Initial Investment\"")
	_ = cmd.MarkFlagRequired("table")

	return cmd
}

func (rc *RowsCmd) report(ctx context.Context, svc tablesvc.Service) (*domain.Report, error) {
	labels, err := svc.GetRowLabels(ctx, rc.table)
	if err != nil {
		return nil, err
	}
	return adapters.MapRowLabelsToReport(svc.Snapshot(ctx).Location, rc.table, labels), nil
}

type SumCmd struct {
	table string
	row   string
}

func NewSumCmd(env Env) *cobra.Command {
	sc := &SumCmd{}
	cmd := &cobra.Command{
		Use:   "sum",
		Short: "Sum the normalized values of a row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.run(cmd, sc.report)
		},
	}

	cmd.Flags().StringVar(&sc.table, "table", "", "Table name")
	cmd.Flags().StringVar(&sc.row, "row", "", "Row label, exactly as it appears in the workbook")
	_ = cmd.MarkFlagRequired("table")
	_ = cmd.MarkFlagRequired("row")

	return cmd
}

func (sc *SumCmd) report(ctx context.Context, svc tablesvc.Service) (*domain.Report, error) {
	sum, err := svc.SumRow(ctx, sc.table, sc.row)
	if err != nil {
		return nil, err
	}
	return adapters.MapRowSumToReport(svc.Snapshot(ctx).Location, *sum), nil
}
