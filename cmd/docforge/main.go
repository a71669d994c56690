// Package main is the entry point for the docforge CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dkhalturin/docforge/internal/bootstrap"
	"github.com/dkhalturin/docforge/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// app is wired once in the root PersistentPreRunE and shared by all
// subcommands.
var app *bootstrap.App

var rootCmd = &cobra.Command{
	Use:   "docforge",
	Short: "Assemble images, documents and PDFs into one exportable file",
	Long: `docforge collects a set of input files (images, plain text, Markdown,
HTML, RTF, PDFs), keeps them in a chosen order, and exports them as a
single document in one of ten output formats, optionally with a cover
page and image enhancement.

Conversion runs as a subcommand: convert for the pipeline itself,
formats to list targets, merge for raw PDF merging, and mcp to expose
the pipeline as MCP tools over stdio.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		app = bootstrap.New(cfg)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the docforge version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("docforge", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
