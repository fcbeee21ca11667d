package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bayanlab/bayanlab-commerce/api/config"
	"github.com/bayanlab/bayanlab-commerce/api/logging"
)

var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bayanlab",
		Short:         "BayanLab commerce: checkout, Stripe webhooks and key delivery",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(serveCmd())
	root.AddCommand(catalogCmd())
	root.AddCommand(deliveriesCmd())
	root.AddCommand(syncBusinessesCmd())
	return root
}

// loadConfig reads the environment and configures the global logger.
func loadConfig(component string) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	log.Logger = logging.Init(logging.Config{
		Format:    cfg.LogFormat,
		Level:     cfg.LogLevel,
		Component: component,
	})
	return cfg, nil
}
