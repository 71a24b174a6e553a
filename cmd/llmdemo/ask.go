package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lgc202/modelkit/llm"
)

const defaultQuestion = "Who is the CEO of ACME Corpp?"

func newAskCmd() *cobra.Command {
	var (
		thinking    bool
		temperature float64
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Resolve a generation backend and ask it a question",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, settings, err := newResolver()
			if err != nil {
				return err
			}

			question := defaultQuestion
			if len(args) > 0 {
				question = strings.Join(args, " ")
			}

			fmt.Printf("Provider: %s\n", settings.Provider)
			if thinking {
				fmt.Println("Mode: Thinking (with reasoning traces)")
			}

			gen, err := resolver.Generation(cmd.Context(), thinking, temperature)
			if err != nil {
				return reportResolveError(err)
			}
			if cfg, ok := llm.ConfigOf(gen); ok {
				fmt.Printf("Model: %s\n", cfg.Model)
			}

			fmt.Printf("\nQuestion: %s\n\n", question)

			raw, err := gen.Generate(cmd.Context(), question)
			if err != nil {
				return err
			}

			resp := llm.Normalize(raw)
			if resp.Reasoning != "" {
				fmt.Println("### Thinking Trace ###")
				fmt.Println(resp.Reasoning)
				fmt.Println()
			}
			fmt.Println("### Final Answer ###")
			fmt.Println(resp.Answer)
			return nil
		},
	}

	cmd.Flags().BoolVar(&thinking, "thinking", false, "prefer a thinking model and show its reasoning trace")
	cmd.Flags().Float64Var(&temperature, "temperature", 0.0, "sampling temperature (0.0-1.0)")

	return cmd
}

// reportResolveError surfaces the remediation text carried by typed
// resolution errors before handing the error back to cobra.
func reportResolveError(err error) error {
	if ce, ok := llm.AsConfigError(err); ok && ce.Remediation != "" {
		fmt.Println(ce.Remediation)
	}
	if ue, ok := llm.AsUnavailableError(err); ok && ue.Remediation != "" {
		fmt.Println(ue.Remediation)
	}
	return err
}
