package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/XJIeI5/computor/internal/logger"
	"github.com/XJIeI5/computor/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the solver over HTTP with a per-user history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		db, err := sql.Open("sqlite3", cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(cmd.Context()); err != nil {
			return err
		}
		if err := storage.CreateTables(cmd.Context(), db); err != nil {
			return err
		}

		s := storage.GetServer(cfg, db)
		errs := make(chan error, 1)
		go func() {
			logger.Info("run storage server", zap.String("host", cfg.Server.Host), zap.Int("port", cfg.Server.Port))
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- err
			}
			close(errs)
		}()

		var stopChan = make(chan os.Signal, 2)
		signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

		select {
		case err := <-errs:
			return err
		case <-stopChan: // wait for SIGINT
		}
		logger.Info("stop storage server")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(ctx)
	},
}
