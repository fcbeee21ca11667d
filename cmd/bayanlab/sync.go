package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/bayanlab/bayanlab-commerce/api/services/dataapi"
)

func syncBusinessesCmd() *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "sync-businesses",
		Short: "Fetch a page of the full business records from the data API",
		Long: `Fetch the full business records, including contact fields, from the
authenticated sync endpoint. Requires BAYANLAB_API_KEY.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig("cli")
			if err != nil {
				return err
			}
			if cfg.BayanLabAPIKey == "" {
				return errors.New("BAYANLAB_API_KEY is not set")
			}

			client := dataapi.NewClient(cfg.DataAPIURL, cfg.BayanLabAPIKey, cfg.DataAPITimeout)
			page, err := client.SyncBusinesses(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(page)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 100, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "page offset")
	return cmd
}
