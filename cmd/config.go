package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/felipegalvaoz/zemdocs-admin/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and scaffold configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config.yaml with the default settings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("out")
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(path); err == nil && !force {
			return eris.Errorf("config init: %s already exists (use --force to overwrite)", path)
		}

		v := viper.New()
		config.SetDefaults(v)

		data, err := yaml.Marshal(v.AllSettings())
		if err != nil {
			return eris.Wrap(err, "config init: marshal defaults")
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return eris.Wrap(err, "config init: write file")
		}

		fmt.Fprintf(os.Stdout, "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Copy so the credential never hits the terminal.
		shown := *cfg
		if shown.Backend.Token != "" {
			shown.Backend.Token = "***"
		}

		data, err := yaml.Marshal(shown)
		if err != nil {
			return eris.Wrap(err, "config show: marshal")
		}
		fmt.Fprint(os.Stdout, string(data))
		return nil
	},
}

func init() {
	configInitCmd.Flags().String("out", "config.yaml", "output path")
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
