package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "weton",
		Short: "Javanese weton compatibility predictor",
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ./config.yaml if present)")

	rootCmd.AddCommand(wetonCmd())
	rootCmd.AddCommand(matchCmd())
	rootCmd.AddCommand(tiboCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
