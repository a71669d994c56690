package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/dkhalturin/docforge/internal/adapters/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the conversion pipeline as MCP tools over stdio",
	Long: `mcp runs a Model Context Protocol server on stdin/stdout exposing
convert_files, list_formats and merge_pdfs. Prometheus metrics are
served over HTTP on the configured metrics port for the lifetime of
the process.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		go func() {
			addr := ":" + app.Config.MetricsPort
			mux := http.NewServeMux()
			mux.Handle("/metrics", app.Metrics.Handler())
			if err := http.ListenAndServe(addr, mux); err != nil {
				app.Logger.Error("metrics server stopped", "error", err)
			}
		}()

		app.Logger.Info("serving MCP over stdio",
			"metrics_port", app.Config.MetricsPort,
		)
		if err := mcpserver.New(app, version).ServeStdio(); err != nil {
			return fmt.Errorf("mcp server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
