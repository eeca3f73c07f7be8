package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"github.com/vullk4n/gestao-de-emails/internal/model"
	"github.com/vullk4n/gestao-de-emails/internal/theme"
)

func attachCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "attach",
		Aliases: []string{"attachment", "attachments"},
		Short:   "Manage attachment records",
	}

	cmd.AddCommand(
		attachAddCommand(),
		attachListCommand(),
		attachDeleteCommand(),
	)

	return cmd
}

func attachAddCommand() *cobra.Command {
	var (
		name     string
		mimeType string
	)

	cmd := &cobra.Command{
		Use:   "add EMAIL_ID FILE",
		Short: "Record a file as an attachment of an email",
		Long:  "Record a file as an attachment of an email. The file is referenced in place, not copied.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			emailID, err := parseID(args[0])
			if err != nil {
				return err
			}
			path, err := filepath.Abs(args[1])
			if err != nil {
				return err
			}

			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if info.IsDir() {
				return fmt.Errorf("%s is a directory", path)
			}

			if name == "" {
				name = filepath.Base(path)
			}
			if mimeType == "" {
				m, err := mimetype.DetectFile(path)
				if err != nil {
					return fmt.Errorf("detecting type of %s: %w", path, err)
				}
				mimeType = m.String()
			}
			size := info.Size()

			a, err := appFromContext(ctx).store.AddAttachment(ctx, model.NewAttachment{
				EmailID:  emailID,
				FileName: name,
				FilePath: path,
				Size:     &size,
				MIMEType: &mimeType,
			})
			if err != nil {
				return err
			}
			if ojson {
				return printJSON(cmd.OutOrStdout(), a)
			}
			cmd.Printf("Added attachment %d %s (%s)\n", a.ID, a.FileName, humanize.IBytes(uint64(size)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "file name to record (defaults to the base name)")
	cmd.Flags().StringVar(&mimeType, "mime", "", "MIME type (detected when empty)")

	return cmd
}

func attachListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list EMAIL_ID",
		Aliases: []string{"ls"},
		Short:   "List the attachments of an email",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			emailID, err := parseID(args[0])
			if err != nil {
				return err
			}
			attachments, err := appFromContext(ctx).store.ListAttachments(ctx, emailID)
			if err != nil {
				return err
			}
			if ojson {
				return printJSON(cmd.OutOrStdout(), attachments)
			}
			for _, a := range attachments {
				size := "?"
				if a.Size != nil {
					size = humanize.IBytes(uint64(*a.Size))
				}
				cmd.Printf("%s %s %s %s\n",
					theme.MutedStyle.Render(fmt.Sprintf("%4d", a.ID)), a.FileName, size,
					theme.MutedStyle.Render(a.FilePath))
			}
			return nil
		},
	}

	return cmd
}

func attachDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"del", "remove", "rm"},
		Short:   "Delete an attachment record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return appFromContext(ctx).store.DeleteAttachment(ctx, id)
		},
	}

	return cmd
}
