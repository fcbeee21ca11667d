package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bayanlab/bayanlab-commerce/api/database"
	stripedb "github.com/bayanlab/bayanlab-commerce/api/services/stripe/db"
)

func deliveriesCmd() *cobra.Command {
	var (
		limit   int
		eventID string
	)
	cmd := &cobra.Command{
		Use:   "deliveries",
		Short: "List recent Stripe webhook deliveries from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig("cli")
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL is not set; the delivery journal is disabled")
			}

			ctx := cmd.Context()
			db, err := database.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			journal := stripedb.NewJournal(db)
			if eventID != "" {
				n, err := journal.CountByEvent(ctx, eventID)
				if err != nil {
					return err
				}
				printEventCount(cmd.OutOrStdout(), eventID, n)
				return nil
			}

			rows, err := journal.Recent(ctx, limit)
			if err != nil {
				return err
			}
			printDeliveries(cmd.OutOrStdout(), rows)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "number of deliveries to show")
	cmd.Flags().StringVar(&eventID, "event", "", "count deliveries of one Stripe event id instead of listing")
	return cmd
}

func printDeliveries(w io.Writer, rows []stripedb.Delivery) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No deliveries recorded.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RECEIVED\tEVENT\tTYPE\tOUTCOME\tDETAIL")
	for _, d := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			d.ReceivedAt.UTC().Format(time.RFC3339), d.EventID, d.EventType, d.Outcome, d.Detail)
	}
	_ = tw.Flush()
}

// printEventCount reports how often an event was delivered. More than once means
// the purchase was provisioned and emailed more than once.
func printEventCount(w io.Writer, eventID string, n int) {
	switch {
	case n == 0:
		fmt.Fprintf(w, "%s: no deliveries recorded\n", eventID)
	case n == 1:
		fmt.Fprintf(w, "%s: delivered once\n", eventID)
	default:
		fmt.Fprintf(w, "%s: delivered %d times (redelivered; check for duplicate keys)\n", eventID, n)
	}
}
