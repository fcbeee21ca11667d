package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bayanlab/bayanlab-commerce/api/services/catalog"
)

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the purchasable tiers and datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printCatalog(cmd.OutOrStdout())
			return nil
		},
	}
}

func printCatalog(w io.Writer) {
	fmt.Fprintln(w, "Tiers")
	fmt.Fprintln(w, strings.Repeat("=", 40))
	for _, t := range catalog.Tiers() {
		grants := "1 dataset of choice"
		if t.AllDatasets() {
			grants = "all datasets"
		}
		fmt.Fprintf(w, "  %-10s %-6s %s\n", t.ID, t.PriceDisplay, grants)
	}

	fmt.Fprintln(w, "\nDatasets")
	fmt.Fprintln(w, strings.Repeat("=", 40))
	for _, d := range catalog.Datasets() {
		fmt.Fprintf(w, "  %-10s %-16s %s\n", d.ID, d.Name, d.Endpoint)
	}
}
