package main

import (
	"github.com/spf13/cobra"

	"github.com/vullk4n/gestao-de-emails/internal/model"
)

func categoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories", "cat"},
		Short:   "Manage categories",
	}

	cmd.AddCommand(
		categoryListCommand(),
		categoryAddCommand(),
		categoryDeleteCommand(),
	)

	return cmd
}

func categoryListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			categories, err := appFromContext(ctx).store.ListCategories(ctx)
			if err != nil {
				return err
			}
			if ojson {
				return printJSON(cmd.OutOrStdout(), categories)
			}
			printCategories(cmd.OutOrStdout(), categories)
			return nil
		},
	}

	return cmd
}

func categoryAddCommand() *cobra.Command {
	var in model.NewCategory

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in.Name = args[0]
			c, err := appFromContext(ctx).store.CreateCategory(ctx, in)
			if err != nil {
				return err
			}
			if ojson {
				return printJSON(cmd.OutOrStdout(), c)
			}
			cmd.Printf("Created category %d %s\n", c.ID, c.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "category description")
	cmd.Flags().StringVar(&in.Color, "color", "", "display color, e.g. #ff8800")

	return cmd
}

func categoryDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete CATEGORY",
		Aliases: []string{"del", "remove", "rm"},
		Short:   "Delete a category by name or ID",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := appFromContext(ctx).store

			id, err := resolveCategory(ctx, s, args[0])
			if err != nil {
				return err
			}
			if id == nil {
				return cmd.Usage()
			}
			return s.DeleteCategory(ctx, *id, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "uncategorize emails that use the category")

	return cmd
}
