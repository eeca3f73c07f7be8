package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/vullk4n/gestao-de-emails/internal/model"
	"github.com/vullk4n/gestao-de-emails/internal/store"
)

func emailCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "email",
		Aliases: []string{"emails", "mail"},
		Short:   "Manage emails",
	}

	cmd.AddCommand(
		emailAddCommand(),
		emailShowCommand(),
		flagCommand("read", "Mark an email as read", "mark as unread instead",
			func(s store.Store) func(context.Context, int64, bool) error { return s.MarkRead }),
		flagCommand("important", "Mark an email as important", "clear the important flag",
			func(s store.Store) func(context.Context, int64, bool) error { return s.MarkImportant }),
		flagCommand("archive", "Archive an email", "move back out of the archive",
			func(s store.Store) func(context.Context, int64, bool) error { return s.MarkArchived }),
		emailMoveCommand(),
		emailReceiveCommand(),
		emailDeleteCommand(),
	)

	return cmd
}

func emailAddCommand() *cobra.Command {
	var (
		in       model.NewEmail
		category string
		sent     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Store a new email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s := appFromContext(ctx).store

			var err error
			if in.CategoryID, err = resolveCategory(ctx, s, category); err != nil {
				return err
			}
			if sent != "" {
				t, err := parseTime(sent)
				if err != nil {
					return err
				}
				in.SentAt = &t
			}

			e, err := s.CreateEmail(ctx, in)
			if err != nil {
				return err
			}
			if ojson {
				return printJSON(cmd.OutOrStdout(), e)
			}
			cmd.Printf("Created email %d\n", e.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Sender, "from", "f", "", "sender address")
	cmd.Flags().StringVarP(&in.Recipient, "to", "t", "", "recipient address")
	cmd.Flags().StringVarP(&in.Subject, "subject", "s", "", "subject line")
	cmd.Flags().StringVarP(&in.Body, "body", "b", "", "message body")
	cmd.Flags().StringVar(&category, "category", "", "category name or ID")
	cmd.Flags().StringVar(&sent, "sent", "", "sent date (defaults to now)")

	return cmd
}

func emailShowCommand() *cobra.Command {
	var markRead bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show an email with its attachments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := appFromContext(ctx).store

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if markRead {
				if err := s.MarkRead(ctx, id, true); err != nil {
					return err
				}
			}

			e, err := s.GetEmail(ctx, id)
			if err != nil {
				return err
			}
			attachments, err := s.ListAttachments(ctx, id)
			if err != nil {
				return err
			}

			if ojson {
				return printJSON(cmd.OutOrStdout(), struct {
					*model.Email
					Attachments []model.Attachment `json:"attachments"`
				}{e, attachments})
			}
			printEmail(cmd.OutOrStdout(), e, attachments)
			return nil
		},
	}

	cmd.Flags().BoolVar(&markRead, "mark-read", false, "mark the email as read")

	return cmd
}

// flagCommand builds one of the read, important and archive commands.
func flagCommand(use, short, unsetHelp string, setter func(store.Store) func(context.Context, int64, bool) error) *cobra.Command {
	var unset bool

	cmd := &cobra.Command{
		Use:   use + " ID...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			set := setter(appFromContext(ctx).store)

			for _, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				if err := set(ctx, id, !unset); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&unset, "unset", "u", false, unsetHelp)

	return cmd
}

func emailMoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move ID CATEGORY",
		Short: "File an email under a category, or \"none\" to clear it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := appFromContext(ctx).store

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			categoryID, err := resolveCategory(ctx, s, args[1])
			if err != nil {
				return err
			}
			return s.SetCategory(ctx, id, categoryID)
		},
	}

	return cmd
}

func emailReceiveCommand() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "receive ID",
		Short: "Record when an email was received",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			receivedAt := time.Now()
			if at != "" {
				if receivedAt, err = parseTime(at); err != nil {
					return err
				}
			}
			return appFromContext(ctx).store.Receive(ctx, id, receivedAt)
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "receipt time (defaults to now)")

	return cmd
}

func emailDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete ID...",
		Aliases: []string{"del", "remove", "rm"},
		Short:   "Delete emails and their attachment records",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := appFromContext(ctx).store

			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			return s.RunAtomic(ctx, func(ctx context.Context) error {
				for _, id := range ids {
					if err := s.DeleteEmail(ctx, id); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	return cmd
}
