package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/zoto/internal/output"
)

func newCatalogCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List selectable moods, tastes, cuisines, dietary options, meal types and budgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			return output.WriteCatalogs(cmd.OutOrStdout(), f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table or json")
	return cmd
}
