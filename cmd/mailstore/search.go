package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vullk4n/gestao-de-emails/internal/store"
	"github.com/vullk4n/gestao-de-emails/internal/theme"
)

func searchCommand() *cobra.Command {
	var (
		filter   store.EmailFilter
		category string
		after    string
		before   string
		order    string
	)

	cmd := &cobra.Command{
		Use:   "search [TEXT]",
		Short: "Search emails",
		Long:  "Search emails by text in the subject or body, combined with category, flag, address and date filters. All given filters must match.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := appFromContext(ctx).store

			if len(args) == 1 {
				filter.Text = &args[0]
			}
			if category != "" {
				id, err := resolveCategory(ctx, s, category)
				if err != nil {
					return err
				}
				if id == nil {
					filter.Uncategorized = true
				}
				filter.CategoryID = id
			}

			filter.Read = boolFlag(cmd, "read")
			if unread := boolFlag(cmd, "unread"); unread != nil {
				v := !*unread
				filter.Read = &v
			}
			filter.Important = boolFlag(cmd, "important")
			filter.Archived = boolFlag(cmd, "archived")
			filter.Sender = stringFlag(cmd, "from")
			filter.Recipient = stringFlag(cmd, "to")

			if after != "" {
				t, err := parseTime(after)
				if err != nil {
					return err
				}
				filter.SentAfter = &t
			}
			if before != "" {
				t, err := parseTime(before)
				if err != nil {
					return err
				}
				filter.SentBefore = &t
			}
			filter.OrderBy = store.EmailOrder(strings.ReplaceAll(order, "-", "_"))

			emails, err := s.SearchEmails(ctx, filter)
			if err != nil {
				return err
			}
			if ojson {
				return printJSON(cmd.OutOrStdout(), emails)
			}

			total, err := s.CountEmails(ctx, filter)
			if err != nil {
				return err
			}
			printEmails(cmd.OutOrStdout(), emails)
			cmd.Println(theme.MutedStyle.Render(fmt.Sprintf("%d of %d emails", len(emails), total)))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category name or ID, or \"none\" for uncategorized")
	cmd.Flags().Bool("read", false, "only read (or with =false, unread) emails")
	cmd.Flags().Bool("unread", false, "only unread emails")
	cmd.Flags().Bool("important", false, "only important (or with =false, not important) emails")
	cmd.Flags().Bool("archived", false, "only archived (or with =false, not archived) emails")
	cmd.Flags().String("from", "", "exact sender address")
	cmd.Flags().String("to", "", "exact recipient address")
	cmd.Flags().StringVar(&after, "after", "", "sent on or after this date")
	cmd.Flags().StringVar(&before, "before", "", "sent on or before this date")
	cmd.Flags().StringVar(&order, "order", string(store.OrderBySentAt), "sort by sent-at, received-at or subject")
	cmd.Flags().BoolVar(&filter.SortDesc, "desc", false, "sort descending")
	cmd.Flags().IntVarP(&filter.Limit, "limit", "n", 0, "maximum number of results")
	cmd.Flags().IntVar(&filter.Offset, "offset", 0, "number of results to skip")

	cmd.MarkFlagsMutuallyExclusive("read", "unread")

	return cmd
}
