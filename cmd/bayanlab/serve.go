package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bayanlab/bayanlab-commerce/api/bootstrap"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the gRPC health server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig("server")
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := bootstrap.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			log.Info().
				Str("http_port", cfg.HTTPPort).
				Str("grpc_port", cfg.GRPCPort).
				Str("version", Version).
				Msg("Starting BayanLab commerce")
			if err := app.Run(ctx); err != nil {
				return err
			}
			log.Info().Msg("Shutdown complete")
			return nil
		},
	}
}
