package main

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List models installed in the local backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, _, err := newResolver()
			if err != nil {
				return err
			}

			inv, err := resolver.Inventory()
			if err != nil {
				return err
			}
			names, err := inv.Installed(cmd.Context())
			if err != nil {
				return reportResolveError(err)
			}

			if len(names) == 0 {
				fmt.Println("No models installed.")
				return nil
			}

			table := uitable.New()
			table.AddRow("NAME")
			for _, name := range names {
				table.AddRow(name)
			}
			fmt.Println(table.String())
			return nil
		},
	}
}
