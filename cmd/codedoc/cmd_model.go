package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nexaaman/CodeDoc/hub"
)

var (
	downloadRepo     string
	downloadFilename string
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Manage local AI models",
}

var modelDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download a GGUF model for local inference",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, filename := downloadRepo, downloadFilename
		if repo == "" {
			repo = cfg.Repo
		}
		if filename == "" {
			filename = cfg.Filename
		}

		d := hub.NewDownloader(logger)
		path, err := d.Download(cmd.Context(), repo, filename, cfg.ModelsDir())
		if err != nil {
			return err
		}

		fmt.Printf("Download complete: %s\n", path)
		return nil
	},
}

var modelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available models",
	RunE: func(cmd *cobra.Command, args []string) error {
		models, err := hub.List(cfg.ModelsDir())
		if err != nil {
			return err
		}
		if len(models) == 0 {
			fmt.Println("No models found. Run 'codedoc model download' first.")
			return nil
		}

		fmt.Printf("Found %d models:\n", len(models))
		for _, m := range models {
			fmt.Printf("  %s (%.2f GB)\n", m.Name, float64(m.Size)/(1<<30))
		}
		return nil
	},
}

func init() {
	modelDownloadCmd.Flags().StringVar(&downloadRepo, "repo", "", "Hugging Face repo ID")
	modelDownloadCmd.Flags().StringVar(&downloadFilename, "filename", "", "GGUF filename")

	modelCmd.AddCommand(modelDownloadCmd, modelListCmd)
	rootCmd.AddCommand(modelCmd)
}
