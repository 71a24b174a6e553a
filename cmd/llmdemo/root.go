package main

import (
	"github.com/spf13/cobra"

	"github.com/lgc202/modelkit/config"
	"github.com/lgc202/modelkit/llm/resolve"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "llmdemo",
		Short:         "Demo CLI for modelkit backend resolution",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newAskCmd())
	cmd.AddCommand(newModelsCmd())
	cmd.AddCommand(newEmbedCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// newResolver loads settings (merging ./.env when present, like the
// workshop scripts) and builds a resolver from them.
func newResolver() (*resolve.Resolver, config.Settings, error) {
	settings, err := config.Load(config.WithEnvFile(".env"))
	if err != nil {
		return nil, config.Settings{}, err
	}
	return resolve.New(settings), settings, nil
}
