package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/de-tools/sheet-atlas/pkg/server"
	"github.com/de-tools/sheet-atlas/pkg/services/config"
	"github.com/de-tools/sheet-atlas/pkg/services/refresh"
	"github.com/de-tools/sheet-atlas/pkg/services/sources"
	tablesvc "github.com/de-tools/sheet-atlas/pkg/services/tables"
	"github.com/de-tools/sheet-atlas/pkg/store/duckdb"
	"github.com/de-tools/sheet-atlas/pkg/store/duckdb/history"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	files   []string
	sheet   string
	dbPath  string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Sheet Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to a config file (yaml, toml or json)")
	rootCmd.Flags().StringArrayVarP(&files, "file", "f", nil,
		"Workbook location (local path or s3://bucket/key), repeatable; defaults to the usual capbudg.xlsx locations")
	rootCmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name (default is the first sheet)")
	rootCmd.Flags().StringVar(&dbPath, "history-db", "", "DuckDB file for the reload history (disabled when empty)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	if len(files) > 0 {
		cfg.Workbook.Paths = files
	}
	if sheet != "" {
		cfg.Workbook.Sheet = sheet
	}
	if dbPath != "" {
		cfg.History.DbPath = dbPath
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	chain, err := sources.NewBuilder(nil).Build(ctx, cfg.Workbook)
	if err != nil {
		return fmt.Errorf("failed to configure workbook sources: %w", err)
	}

	var (
		opts []tablesvc.Option
		deps = server.Dependencies{Logger: logger}
	)
	if cfg.History.DbPath != "" {
		db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.History.DbPath})
		if err != nil {
			return fmt.Errorf("failed to create DuckDB instance: %w", err)
		}
		defer func(db *sql.DB) {
			_ = db.Close()
		}(db)

		historyStore, err := history.NewStore(db)
		if err != nil {
			return fmt.Errorf("failed to create reload history store: %w", err)
		}
		opts = append(opts, tablesvc.WithRecorder(historyStore))
		deps.History = historyStore
		deps.HistoryLimit = cfg.History.Limit
		logger.Info().Msgf("Reload history is kept in `%s`.", cfg.History.DbPath)
	}

	svc := tablesvc.NewService(chain, opts...)
	result, err := svc.Reload(ctx)
	if err != nil {
		return fmt.Errorf("initial load failed: %w", err)
	}
	if result.Error != nil {
		logger.Warn().Msg("Starting without workbook data, use /reload_data once the file is in place.")
	} else {
		logger.Info().Msgf("Loaded %d tables from `%s`.", result.TablesLoaded, result.Location)
	}
	deps.Tables = svc

	if interval := cfg.Workbook.RefreshInterval; interval > 0 {
		refreshCtx, cancel := context.WithCancel(ctx)
		runner := refresh.NewRunner(svc, refresh.RunnerConfig{Interval: interval})
		go runner.Run(refreshCtx)
		defer func() {
			cancel()
			<-runner.Done()
		}()
	}

	api := server.NewWebAPI(server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies:    deps,
	})

	return api.Start()
}
