package terminal

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/de-tools/sheet-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/sheet-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/sheet-atlas/pkg/services/config"
	"github.com/de-tools/sheet-atlas/pkg/services/sources"
	tablesvc "github.com/de-tools/sheet-atlas/pkg/services/tables"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const (
	FormatTable = "table"
	FormatPlain = "plain"
)

// ServiceFactory builds a loaded table service from the resolved configuration.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (tablesvc.Service, error)

// CLI represents the command-line interface
type CLI struct {
	output  io.Writer
	factory ServiceFactory
	rootCmd *cobra.Command

	cfgPath string
	files   []string
	sheet   string
	format  string
}

// Options contain configuration for the CLI
type Options struct {
	Output  io.Writer
	Factory ServiceFactory
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Factory == nil {
		opts.Factory = LoadService
	}

	cli := &CLI{
		output:  opts.Output,
		factory: opts.Factory,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, mostly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sheet-atlas",
		Short:         "Capital-budgeting workbook explorer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.output)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&cli.cfgPath, "config", "c", "", "Path to a config file")
	flags.StringArrayVarP(&cli.files, "file", "f", nil, "Workbook location (local path or s3://bucket/key), repeatable")
	flags.StringVar(&cli.sheet, "sheet", "", "Sheet name (default is the first sheet)")
	flags.StringVarP(&cli.format, "format", "o", FormatTable, "Output format: table or plain")

	env := commands.Env{
		Load:     cli.load,
		Reporter: cli.reporter,
	}

	cmd.AddCommand(commands.NewTablesCmd(env))
	cmd.AddCommand(commands.NewRowsCmd(env))
	cmd.AddCommand(commands.NewSumCmd(env))
	cmd.AddCommand(commands.NewSectionsCmd(env))

	return cmd
}

func (cli *CLI) load(ctx context.Context) (tablesvc.Service, error) {
	cfg, err := config.LoadConfig(cli.cfgPath)
	if err != nil {
		return nil, err
	}
	if len(cli.files) > 0 {
		cfg.Workbook.Paths = cli.files
	}
	if cli.sheet != "" {
		cfg.Workbook.Sheet = cli.sheet
	}
	return cli.factory(ctx, cfg)
}

func (cli *CLI) reporter() commands.Reporter {
	if cli.format == FormatPlain {
		return NewReporter(cli.output)
	}
	return export.NewReporter(cli.output)
}

// LoadService builds the source chain from cfg and performs the initial reload.
// A workbook that cannot be read is an error here, unlike in the server.
func LoadService(ctx context.Context, cfg *config.Config) (tablesvc.Service, error) {
	chain, err := sources.NewBuilder(nil).Build(ctx, cfg.Workbook)
	if err != nil {
		return nil, err
	}

	svc := tablesvc.NewService(chain)
	result, err := svc.Reload(ctx)
	if err != nil {
		return nil, err
	}
	if result.Error != nil {
		return nil, errors.New(*result.Error)
	}

	zerolog.Ctx(ctx).Debug().
		Str("location", result.Location).
		Int("tables", result.TablesLoaded).
		Msg("workbook loaded")

	return svc, nil
}
