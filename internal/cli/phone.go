package cli

import (
	"github.com/spf13/cobra"
)

func newPhoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phone",
		Short: "Parent phone commands",
	}

	cmd.AddCommand(newPhoneListCmd())
	cmd.AddCommand(newPhoneAddCmd())
	cmd.AddCommand(newPhoneDeleteCmd())

	return cmd
}

func newPhoneListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <user-id>",
		Short: "List a user's parent phones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []ParentPhone

			if err := client.Get("/users/"+args[0]+"/parent-phones/", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(ParentPhoneList(result))
			return nil
		},
	}
}

func newPhoneAddCmd() *cobra.Command {
	var number, name string

	cmd := &cobra.Command{
		Use:   "add <user-id>",
		Short: "Add a parent phone for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"phone_number": number,
				"parent_name":  name,
			}
			var result ParentPhone

			if err := client.Post("/users/"+args[0]+"/parent-phones/", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&number, "number", "", "Phone number (required)")
	cmd.Flags().StringVar(&name, "name", "", "Parent name")
	_ = cmd.MarkFlagRequired("number")

	return cmd
}

func newPhoneDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a parent phone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/parent-phones/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Parent phone deleted")
			return nil
		},
	}
}
