package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/placard"
	"github.com/spf13/cobra"
)

var force bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage placard configuration files",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "placard.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := placard.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Println("Wrote default config to", path)
		return nil
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Load and validate the configuration given by --config",
	RunE: func(cmd *cobra.Command, args []string) error {
		if configPath == "" {
			return fmt.Errorf("--config is required")
		}
		if _, err := placard.LoadConfig(configPath); err != nil {
			return err
		}
		fmt.Println(configPath, "is valid")
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configCheckCmd)
	rootCmd.AddCommand(configCmd)
}
