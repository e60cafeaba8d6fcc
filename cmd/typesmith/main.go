// Package main provides the CLI for the Typesmith declaration generator.
// Typesmith reads a declarative backend schema (databases, collections,
// typed attributes) and emits a TypeScript declaration file with enums,
// union types, record interfaces, and identifier constant tables.
//
// Usage:
//
//	typesmith init                  # Create typesmith.yaml and an example schema
//	typesmith check                 # Validate the schema and report problems
//	typesmith generate              # Generate the declaration file
//	typesmith generate --watch      # Regenerate on schema changes
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hlop3z/typesmith/internal/ui"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

// Global flags
var (
	configFile string
	noColor    bool
)

// customHelp displays a styled help message for the root command.
func customHelp(cmd *cobra.Command) {
	categories := []CommandCategory{
		{
			Title: "Setup",
			Commands: []CommandInfo{
				{"init", "Create typesmith.yaml and an example schema"},
			},
		},
		{
			Title: "Generation",
			Commands: []CommandInfo{
				{"generate", "Generate the TypeScript declaration file"},
				{"check", "Validate the schema and report problems"},
			},
		},
	}

	renderCategoryHelp(
		"⚒ Typesmith",
		"★  Backend schema in, TypeScript declarations out",
		categories,
		cmd.LocalFlags(),
	)
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "typesmith",
		Short:         "Schema-to-TypeScript declaration generator",
		Long:          `Typesmith generates a TypeScript declaration file from a declarative backend schema document.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				ui.SetDefault(&ui.Config{Mode: ui.ModePlain, Writer: os.Stdout})
			}
		},
	}

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd == rootCmd {
			customHelp(cmd)
			return
		}
		fmt.Println(cmd.Long)
		fmt.Println()
		fmt.Println(cmd.UsageString())
	})

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "typesmith.yaml", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		initCmd(),
		generateCmd(),
		checkCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError(err))
		os.Exit(1)
	}
}
