package cli

import (
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Race and religion catalog commands",
	}

	cmd.AddCommand(newCatalogRacesCmd())
	cmd.AddCommand(newCatalogReligionsCmd())

	return cmd
}

func newCatalogRacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "races",
		Short: "List all races",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []CatalogEntry

			if err := client.Get("/races/", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(CatalogList(result))
			return nil
		},
	}
}

func newCatalogReligionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "religions",
		Short: "List all religions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []CatalogEntry

			if err := client.Get("/religions/", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(CatalogList(result))
			return nil
		},
	}
}
