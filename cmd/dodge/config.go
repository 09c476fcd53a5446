package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/games/dodge"
)

var flagConfigDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a new game would use, after applying the config
search path and --difficulty, as YAML. The output can be saved and passed
back with --config.

Search order:
  --config path
  ~/.dodge/configs/dodge.yaml
  ./configs/dodge.yaml
  built-in defaults

Examples:
  dodge config
  dodge config --difficulty hard > hard.yaml
  dodge config --default`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefault, "default", false, "Print the built-in defaults")
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if flagConfigDefault {
		_, err := out.Write(config.GetDefaultYAML())
		return err
	}

	configureGames()
	cfg, err := dodge.LoadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	data, err := config.MarshalDodge(cfg)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
