// Package main is the entry point for the outliner CLI, which converts
// PDF documents into JSON heading outlines.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the outliner CLI.
var rootCmd = &cobra.Command{
	Use:   "outliner",
	Short: "Extract heading outlines from PDF documents",
	Long: `outliner converts a PDF's visual structure (fonts, sizes, positions,
page layout) into a table-of-contents-like outline of headings, emitted
as JSON. It is meant for document-processing pipelines handling PDFs
that carry no embedded outline or bookmarks.

The extract subcommand processes a single PDF or a directory of PDFs;
in batch mode a failure on one file is reported and the rest still
produce output.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./outliner.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("outliner")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("OUTLINER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
