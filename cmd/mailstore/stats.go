package main

import (
	"errors"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func statsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show email counts by flag and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			st, err := appFromContext(ctx).store.Stats(ctx)
			if err != nil {
				return err
			}
			if ojson {
				return printJSON(cmd.OutOrStdout(), st)
			}
			printStats(cmd.OutOrStdout(), st)
			return nil
		},
	}

	return cmd
}

func purgeCommand() *cobra.Command {
	var (
		days   int
		before string
	)

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete emails sent before a cutoff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var cutoff time.Time
			switch {
			case before != "":
				t, err := parseTime(before)
				if err != nil {
					return err
				}
				cutoff = t
			case days > 0:
				cutoff = time.Now().AddDate(0, 0, -days)
			default:
				return errors.New("one of --days or --before is required")
			}

			n, err := appFromContext(ctx).store.PurgeOlderThan(ctx, cutoff)
			if err != nil {
				return err
			}
			cmd.Printf("Purged %s emails sent before %s (%s)\n",
				humanize.Comma(n), cutoff.Format(time.DateOnly), humanize.Time(cutoff))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "purge emails older than this many days")
	cmd.Flags().StringVar(&before, "before", "", "purge emails sent before this date")
	cmd.MarkFlagsMutuallyExclusive("days", "before")

	return cmd
}
