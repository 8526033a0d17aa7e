package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/sheet-atlas/pkg/handlers/tables"
	sheetatlasmiddleware "github.com/de-tools/sheet-atlas/pkg/server/middleware"
	tablesvc "github.com/de-tools/sheet-atlas/pkg/services/tables"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          http.Handler
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Tables       tablesvc.Service
	History      handlers.HistoryLister
	HistoryLimit int
	Logger       zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) http.Handler {
	h := handlers.NewHandler(
		config.Dependencies.Tables,
		config.Dependencies.History,
		config.Dependencies.HistoryLimit,
	)
	logger := config.Dependencies.Logger

	router := chi.NewRouter()

	router.Use(sheetatlasmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/", h.Root)
	router.Get("/list_tables", h.ListTables)
	router.Get("/get_table_details", h.GetTableDetails)
	router.Get("/row_sum", h.RowSum)
	router.Get("/reload_data", h.Reload)
	router.Post("/reload_data", h.Reload)
	router.Get("/reload_history", h.ReloadHistory)
	router.Get("/debug", h.Debug)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router:          router,
		logger:          &logger,
		shutdownTimeout: timeout,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
