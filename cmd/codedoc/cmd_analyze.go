package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Nexaaman/CodeDoc/agent"
	"github.com/Nexaaman/CodeDoc/analysis"
	"github.com/Nexaaman/CodeDoc/quality"
	"github.com/Nexaaman/CodeDoc/report"
	"github.com/Nexaaman/CodeDoc/server"
)

var (
	analyzeJSON    string
	analyzeOffline bool
	analyzeTools   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a source file for bugs and improvements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		result := analysis.Scan(source, path)

		fmt.Printf("Static analysis of %s\n\n", filepath.Base(path))
		fmt.Println(report.Issues(result))
		fmt.Println(report.Score(result.Score))

		if analyzeJSON != "" {
			if err := report.ExportJSON(result, analyzeJSON); err != nil {
				return err
			}
			fmt.Printf("\nReport written to %s\n", analyzeJSON)
		}

		if analyzeTools {
			fmt.Println("\nExternal tools:")
			fmt.Print(report.Tools(quality.NewRunner().RunAll(cmd.Context(), path)))
		}

		if analyzeOffline {
			return nil
		}

		m := server.New(cfg, logger)
		if !m.IsRunning() {
			fmt.Println("\nServer is not running; skipping AI review. Execute 'codedoc serve' first.")
			return nil
		}

		a := agent.New(agent.NewClient(cfg.BaseURL(), logger), logger)
		fmt.Println("\nAgent is thinking (this may take a moment)...")
		review, err := a.AnalyzeFile(cmd.Context(), path)
		if err != nil {
			return err
		}

		rendered, err := report.Markdown(review)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain <code>",
	Short: "Explain an issue code reported by the analyzer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meta, err := analysis.LookupIssue(args[0])
		if err != nil {
			return err
		}

		body := fmt.Sprintf("# %s: %s\n\n%s\n\n%s\n",
			meta.Code, meta.Title, meta.ShortDescription, meta.Description)
		rendered, err := report.Markdown(body)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeJSON, "json", "", "also write the scan result to a JSON file")
	analyzeCmd.Flags().BoolVar(&analyzeOffline, "offline", false, "static analysis only, skip the AI review")
	analyzeCmd.Flags().BoolVar(&analyzeTools, "tools", false, "also run external linters (ruff, black, flake8)")

	rootCmd.AddCommand(analyzeCmd, explainCmd)
}
