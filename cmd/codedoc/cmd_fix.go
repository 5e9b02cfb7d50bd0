package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nexaaman/CodeDoc/agent"
	"github.com/Nexaaman/CodeDoc/patch"
	"github.com/Nexaaman/CodeDoc/server"
)

var fixWrite bool

var fixCmd = &cobra.Command{
	Use:   "fix <file>",
	Short: "Ask the model for a corrected version of a file",
	Long: `Requests a fixed version of the file from the local model and prints the
unified diff. With --write, the fix is applied in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		original, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		m := server.New(cfg, logger)
		if !m.IsRunning() {
			return fmt.Errorf("server is not running, execute 'codedoc serve' first")
		}

		a := agent.New(agent.NewClient(cfg.BaseURL(), logger), logger)
		fmt.Println("Agent is thinking (this may take a moment)...")
		fixed, err := a.SuggestFix(cmd.Context(), path)
		if err != nil {
			return err
		}

		diff := patch.Unified(string(original), fixed, path)
		if diff == "" {
			fmt.Println("No changes suggested.")
			return nil
		}
		fmt.Println(diff)

		if !fixWrite {
			fmt.Println("Run again with --write to apply.")
			return nil
		}

		if err := patch.Apply(path, fixed); err != nil {
			return err
		}
		fmt.Printf("Applied fix to %s\n", path)
		return nil
	},
}

func init() {
	fixCmd.Flags().BoolVar(&fixWrite, "write", false, "apply the suggested fix in place")
	rootCmd.AddCommand(fixCmd)
}
