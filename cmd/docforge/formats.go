package main

import (
	"github.com/spf13/cobra"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported output formats",
	Run: func(cmd *cobra.Command, args []string) {
		for _, f := range domain.OutputFormats() {
			note := "merged document"
			if f.PerImage() {
				note = "one file per image"
			}
			cmd.Printf("%-10s .%-5s %s\n", f, f.Extension(), note)
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
