package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"fostercare/cmd/internal/config"
	"fostercare/cmd/internal/domain/sqlite"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// rootCmd serves by default.
var rootCmd = &cobra.Command{
	Use:          "fostercare",
	Short:        "Foster care record management server",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the record tables and exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func loadConfig(ctx context.Context) (*config.AppConfig, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	log.SetLevel(config.ParseLevel(cfg.LogLevel))
	return cfg, nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}

	if _, err := sqlite.Init(cfg.DatabasePath); err != nil {
		return err
	}
	log.Infof("database %s is up to date", cfg.DatabasePath)
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	srv, err := newServer(ctx, cfg)
	if err != nil {
		return err
	}
	e := srv.echo

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range srv.sweepers {
		s := s
		g.Go(func() error {
			s.Start(gctx)
			return nil
		})
	}
	g.Go(func() error {
		log.Infof("listening on %s (%s driver)", cfg.ListenAddr, cfg.Driver)
		if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
