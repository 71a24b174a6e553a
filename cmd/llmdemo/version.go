package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lgc202/modelkit/version"
)

func newVersionCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			switch output {
			case "json":
				s, err := info.ToJSON()
				if err != nil {
					return err
				}
				fmt.Println(s)
			case "text":
				fmt.Println(info.Text())
			default:
				fmt.Println(info.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: '', 'text' or 'json'")

	return cmd
}
