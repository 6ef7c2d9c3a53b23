package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/gmatprep/internal/llm"
	"github.com/abhisek/gmatprep/internal/server"
)

var askCmd = &cobra.Command{
	Use:   "ask [prompt]",
	Short: "Send a raw prompt to the configured LLM and print the reply",
	Long:  "Send a raw prompt to the configured LLM, with no system message, and print the reply. Without a prompt it asks the model to confirm it is working.",
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := server.DefaultTestPrompt
		if len(args) > 0 {
			prompt = strings.Join(args, " ")
		}

		client, closeFn, err := newClient(cmd.Context(), cmd, llmConfig(cmd))
		if err != nil {
			return err
		}
		defer closeFn()

		ctx := llm.WithPurpose(cmd.Context(), llm.PurposeTestCompletion)
		out, err := client.Complete(ctx, "", prompt)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	addLLMFlags(askCmd)
}
