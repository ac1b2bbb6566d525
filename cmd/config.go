package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
)

// configCmd prints the active configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = model.DefaultConfigPath()
		}
		cfg, err := model.LoadConfig(path)
		if err != nil {
			return err
		}

		fmt.Printf("config file        %s\n", path)
		fmt.Printf("base_url           %s\n", cfg.BaseURL)
		fmt.Printf("poll_interval_sec  %d\n", cfg.PollIntervalSec)
		fmt.Printf("cache_path         %s\n", cfg.CachePath)
		fmt.Printf("delivery fallback  %t\n", cfg.Delivery.AllowFallback)
		fmt.Printf("log level          %s\n", cfg.Log.Level)
		return nil
	},
}

// configInitCmd writes a starter config file with the defaults.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = model.DefaultConfigPath()
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}

		cfg, err := model.LoadConfig(path)
		if err != nil {
			return err
		}
		if err := model.SaveConfig(path, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
