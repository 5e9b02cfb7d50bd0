// codedoc is a command-line coding assistant that pairs a locally hosted
// language model with static analysis of Python source files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Nexaaman/CodeDoc/config"
)

var (
	verbose bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "codedoc",
	Short: "CodeDoc: your local AI coding assistant",
	Long: `CodeDoc analyzes source files with a built-in static analyzer and a
locally hosted language model served over an OpenAI-compatible endpoint.

Download a model, start the server, then point analyze at a file:

  codedoc model download
  codedoc serve
  codedoc analyze app.py`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		cfg, err = config.Load()
		if err != nil {
			return err
		}
		return cfg.EnsureDirs()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
