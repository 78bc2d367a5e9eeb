// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the notebook-engine CLI, the tooling
// that keeps a collection of literate tutorial documents published as cloud
// notebooks: batch conversion, notebook repair, filename cleanup, and a
// searchable catalog.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notebook-engine/internal/logging"
	"github.com/pdiddy/notebook-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the notebook-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "notebook-engine",
	Short: "Tooling for tutorial-document notebook collections",
	Long: `notebook-engine converts literate tutorial documents (.qmd, .Rmd) into
Jupyter/Colab notebooks and maintains the published collection around them.

Each maintenance task is a subcommand: convert renders documents into
notebooks, repair normalizes notebook files, rename slugifies filenames,
and catalog indexes the collection for full-text search.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(logConfig())
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./notebook-engine.yaml or ~/.config/notebook-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("notebook-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "notebook-engine"))
		}
	}

	viper.SetEnvPrefix("NOTEBOOK_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// logConfig builds the log settings from config file keys.
func logConfig() types.LogConfig {
	return types.LogConfig{
		Path:       viper.GetString("log.path"),
		Level:      viper.GetString("log.level"),
		MaxSizeMB:  viper.GetInt("log.max_size_mb"),
		MaxBackups: viper.GetInt("log.max_backups"),
		MaxAgeDays: viper.GetInt("log.max_age_days"),
		Compress:   viper.GetBool("log.compress"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
