package cli

import (
	"fmt"

	"github.com/alexanderramin/learntrail/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage learners in the local store",
	}

	cmd.AddCommand(
		newUserAddCmd(app),
		newUserListCmd(app),
	)

	return cmd
}

func newUserAddCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Add a learner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLocal("user add"); err != nil {
				return err
			}
			u, err := app.Users.Add(cmd.Context(), args[0], email)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", formatter.Bold(u.Username), formatter.TruncID(u.UserUUID))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List learners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLocal("user list"); err != nil {
				return err
			}
			users, err := app.Users.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUserList(users))
			return nil
		},
	}
}
