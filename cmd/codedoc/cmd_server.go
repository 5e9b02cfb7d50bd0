package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Nexaaman/CodeDoc/hub"
	"github.com/Nexaaman/CodeDoc/server"
)

var (
	serveModel     string
	serveGPULayers int
	serveCtxSize   int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local inference server",
	RunE: func(cmd *cobra.Command, args []string) error {
		modelPath, err := resolveModelPath()
		if err != nil {
			return err
		}

		cfg.GPULayers = serveGPULayers
		cfg.ContextSize = serveCtxSize

		m := server.New(cfg, logger)
		if err := m.Start(cmd.Context(), modelPath); err != nil {
			return err
		}

		fmt.Printf("Server online at %s\n", cfg.BaseURL())
		return nil
	},
}

var killCmd = &cobra.Command{
	Use:   "kill",
	Short: "Stop the background server",
	RunE: func(cmd *cobra.Command, args []string) error {
		m := server.New(cfg, logger)
		if err := m.Stop(); err != nil {
			if errors.Is(err, server.ErrNotRunning) {
				fmt.Println("No server PID found.")
				return nil
			}
			return err
		}
		fmt.Println("Server stopped.")
		return nil
	},
}

// resolveModelPath picks the requested model from the models directory, or
// the first available one when none is named.
func resolveModelPath() (string, error) {
	if serveModel != "" {
		path := filepath.Join(cfg.ModelsDir(), serveModel)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("model %s not found in %s", serveModel, cfg.ModelsDir())
		}
		return path, nil
	}

	models, err := hub.List(cfg.ModelsDir())
	if err != nil {
		return "", err
	}
	if len(models) == 0 {
		return "", fmt.Errorf("no models found in %s, download one first", cfg.ModelsDir())
	}

	fmt.Printf("No model specified. Using: %s\n", models[0].Name)
	return filepath.Join(cfg.ModelsDir(), models[0].Name), nil
}

func init() {
	serveCmd.Flags().StringVar(&serveModel, "model", "", "name of GGUF file to serve")
	serveCmd.Flags().IntVar(&serveGPULayers, "gpu-layers", -1, "GPU layers to offload (-1 for all)")
	serveCmd.Flags().IntVar(&serveCtxSize, "ctx", 16384, "context window size")

	rootCmd.AddCommand(serveCmd, killCmd)
}
