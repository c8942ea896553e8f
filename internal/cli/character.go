package cli

import (
	"github.com/spf13/cobra"
)

func newCharacterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "character",
		Short: "Character management commands",
	}

	cmd.AddCommand(newCharacterGetCmd())
	cmd.AddCommand(newCharacterListCmd())
	cmd.AddCommand(newCharacterCreateCmd())
	cmd.AddCommand(newCharacterUpdateCmd())
	cmd.AddCommand(newCharacterDeleteCmd())

	return cmd
}

func newCharacterGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a character by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Character

			if err := client.Get("/characters/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newCharacterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <user-id>",
		Short: "List a user's characters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Character

			if err := client.Get("/user/"+args[0]+"/characters/", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(CharacterList(result))
			return nil
		},
	}
}

func characterFlags(cmd *cobra.Command, name, user, race, religion *string, xp *int) {
	cmd.Flags().StringVar(name, "name", "", "Character name (required)")
	cmd.Flags().StringVar(user, "user", "", "Owning user ID (required)")
	cmd.Flags().StringVar(race, "race", "", "Race ID")
	cmd.Flags().StringVar(religion, "religion", "", "Religion ID")
	cmd.Flags().IntVar(xp, "xp", 0, "Experience points")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("user")
}

func characterBody(name, user, race, religion string, xp int) map[string]any {
	body := map[string]any{
		"name": name,
		"user": user,
		"xp":   xp,
	}
	if race != "" {
		body["race"] = race
	}
	if religion != "" {
		body["religion"] = religion
	}
	return body
}

func newCharacterCreateCmd() *cobra.Command {
	var name, user, race, religion string
	var xp int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a character",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Character

			if err := client.Post("/characters/", characterBody(name, user, race, religion, xp), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	characterFlags(cmd, &name, &user, &race, &religion, &xp)
	return cmd
}

func newCharacterUpdateCmd() *cobra.Command {
	var name, user, race, religion string
	var xp int

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a character record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Character

			if err := client.Put("/characters/"+args[0], characterBody(name, user, race, religion, xp), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	characterFlags(cmd, &name, &user, &race, &religion, &xp)
	return cmd
}

func newCharacterDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/characters/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Character deleted")
			return nil
		},
	}
}
