package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEmbedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "embed text...",
		Short: "Embed one or more texts and print vector dimensions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, settings, err := newResolver()
			if err != nil {
				return err
			}

			emb, err := resolver.Embedding()
			if err != nil {
				return reportResolveError(err)
			}

			vectors, err := emb.Embed(cmd.Context(), args)
			if err != nil {
				return err
			}

			fmt.Printf("Provider: %s\n", settings.Provider)
			for i, vec := range vectors {
				fmt.Printf("%q -> %d dimensions\n", args[i], len(vec))
			}
			return nil
		},
	}
}
