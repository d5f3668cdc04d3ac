package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"shotfold/internal/api"
	"shotfold/internal/config"
	"shotfold/internal/pipeline"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP conversion service",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Service mode logs JSON for ingestion by whatever runs it.
		log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

		srvCfg := config.LoadServer()
		if err := srvCfg.Validate(); err != nil {
			return err
		}

		conv, _, err := loadConverter(serveConfigPath)
		if err != nil {
			return err
		}
		conv = conv.WithLogger(log)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		orch := pipeline.NewOrchestrator(srvCfg, conv, log)
		orch.Start(ctx)

		srv := api.NewServer(orch, conv, log, srvCfg)
		httpServer := &http.Server{
			Addr:         ":" + srvCfg.Port,
			Handler:      srv,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh
			log.Info("shutting down...")

			orch.Stop()

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			httpServer.Shutdown(shutdownCtx)
		}()

		log.Info("starting shotfold service", "port", srvCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "configuration file path")
	rootCmd.AddCommand(serveCmd)
}
