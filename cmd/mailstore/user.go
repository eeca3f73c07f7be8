package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vullk4n/gestao-de-emails/internal/model"
	"github.com/vullk4n/gestao-de-emails/internal/theme"
)

func userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Aliases: []string{"users"},
		Short:   "Manage users",
	}

	cmd.AddCommand(
		userAddCommand(),
		userListCommand(),
		userRenameCommand(),
	)

	return cmd
}

func userAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add NAME EMAIL",
		Short: "Register a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := appFromContext(ctx).store.CreateUser(ctx, model.NewUser{Name: args[0], Email: args[1]})
			if err != nil {
				return err
			}
			if ojson {
				return printJSON(cmd.OutOrStdout(), u)
			}
			cmd.Printf("Created user %d %s <%s>\n", u.ID, u.Name, u.Email)
			return nil
		},
	}

	return cmd
}

func userListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List users",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			users, err := appFromContext(ctx).store.ListUsers(ctx)
			if err != nil {
				return err
			}
			if ojson {
				return printJSON(cmd.OutOrStdout(), users)
			}
			for _, u := range users {
				cmd.Printf("%s %s %s\n",
					theme.MutedStyle.Render(fmt.Sprintf("%3d", u.ID)), u.Name,
					theme.MutedStyle.Render("<"+u.Email+">"))
			}
			return nil
		},
	}

	return cmd
}

func userRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Change a user's display name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return appFromContext(ctx).store.RenameUser(ctx, id, args[1])
		},
	}

	return cmd
}
