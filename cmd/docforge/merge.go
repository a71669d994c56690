package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [pdfs...]",
	Short: "Merge PDF files into one, preserving argument order",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs := make([][]byte, 0, len(args))
		for _, p := range args {
			data, err := os.ReadFile(p)
			if err != nil {
				return fmt.Errorf("read %s: %w", p, err)
			}
			inputs = append(inputs, data)
		}

		merged, err := app.Merger.Merge(cmd.Context(), inputs)
		if err != nil {
			return fmt.Errorf("merge PDFs: %w", err)
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = filepath.Join(app.Config.OutputDir, "merged.pdf")
		}
		if dir := filepath.Dir(out); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(out, merged, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}

		cmd.Println(out)
		return nil
	},
}

func init() {
	mergeCmd.Flags().String("out", "", "destination path (default: merged.pdf in the output dir)")
	rootCmd.AddCommand(mergeCmd)
}
