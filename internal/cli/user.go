package cli

import (
	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
	}

	cmd.AddCommand(newUserListCmd())
	cmd.AddCommand(newUserGetCmd())
	cmd.AddCommand(newUserCreateCmd())
	cmd.AddCommand(newUserUpdateCmd())
	cmd.AddCommand(newUserDeleteCmd())

	return cmd
}

func newUserListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []User

			if err := client.Get("/users/", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(UserList(result))
			return nil
		},
	}
}

func newUserGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a user by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result User

			if err := client.Get("/user/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func userFlags(cmd *cobra.Command, user, email, pass, phone *string) {
	cmd.Flags().StringVar(user, "user", "", "Username (required)")
	cmd.Flags().StringVar(email, "email", "", "Email (required)")
	cmd.Flags().StringVar(pass, "pass", "", "Password (required)")
	cmd.Flags().StringVar(phone, "phone", "", "Personal phone")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("pass")
}

func userBody(user, email, pass, phone string) map[string]string {
	body := map[string]string{
		"username": user,
		"email":    email,
		"password": pass,
	}
	if phone != "" {
		body["personal_phone"] = phone
	}
	return body
}

func newUserCreateCmd() *cobra.Command {
	var user, email, pass, phone string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result User

			if err := client.Post("/user/", userBody(user, email, pass, phone), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	userFlags(cmd, &user, &email, &pass, &phone)
	return cmd
}

func newUserUpdateCmd() *cobra.Command {
	var user, email, pass, phone string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a user record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result User

			if err := client.Put("/user/"+args[0], userBody(user, email, pass, phone), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	userFlags(cmd, &user, &email, &pass, &phone)
	return cmd
}

func newUserDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user and everything attached to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/user/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("User deleted")
			return nil
		},
	}
}
