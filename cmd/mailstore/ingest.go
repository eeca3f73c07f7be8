package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vullk4n/gestao-de-emails/internal/ingest"
)

func ingestCommand() *cobra.Command {
	var (
		category  string
		recipient string
	)

	cmd := &cobra.Command{
		Use:   "ingest FILE...",
		Short: "Import .eml message files",
		Long:  "Import RFC 5322 message files. Each message, its receipt time and its attachments are stored together or not at all.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := appFromContext(ctx)

			categoryID, err := resolveCategory(ctx, a.store, category)
			if err != nil {
				return err
			}

			opts := ingest.Options{
				AttachmentDir: a.cfg.Attachments.Dir,
				CategoryID:    categoryID,
				Recipient:     recipient,
				Logger:        a.logger,
			}

			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				res, err := ingest.Ingest(ctx, a.store, f, opts)
				f.Close()
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				if ojson {
					if err := printJSON(cmd.OutOrStdout(), res); err != nil {
						return err
					}
					continue
				}
				cmd.Printf("%s: email %d with %d attachments\n", path, res.Email.ID, len(res.Attachments))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category name or ID for imported emails")
	cmd.Flags().StringVar(&recipient, "recipient", "", "recipient for messages without a To header")

	return cmd
}
