// Package mcpserver exposes the conversion pipeline as MCP tools over
// stdio, so agent hosts can drive conversions without the CLI.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dkhalturin/docforge/internal/adapters/fileio"
	"github.com/dkhalturin/docforge/internal/bootstrap"
	"github.com/dkhalturin/docforge/internal/core/domain"
)

type Server struct {
	app *bootstrap.App
	mcp *server.MCPServer
}

func New(app *bootstrap.App, version string) *Server {
	s := &Server{
		app: app,
		mcp: server.NewMCPServer("docforge", version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}
	s.registerConvertTool()
	s.registerFormatsTool()
	s.registerMergeTool()
	return s
}

// ServeStdio blocks until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerConvertTool() {
	tool := mcp.NewTool("convert_files",
		mcp.WithDescription("Convert a set of files (images, text documents, PDFs) into a single output format and write the results to disk."),
		mcp.WithArray("paths",
			mcp.Required(),
			mcp.Description("File paths to convert, in the desired order"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("format",
			mcp.Required(),
			mcp.Description("Output format: pdf, txt, html, markdown, csv, json, rtf, png, jpg or xlsx"),
		),
		mcp.WithString("output_dir", mcp.Description("Directory for generated files (defaults to the configured output dir)")),
		mcp.WithBoolean("merge", mcp.Description("Merge all files into one output document (default true)")),
		mcp.WithBoolean("include_metadata", mcp.Description("Embed a metadata summary in the output")),
		mcp.WithNumber("quality", mcp.Description("JPEG quality 1-100 (default 90)")),
		mcp.WithString("page_size", mcp.Description("PDF page size: a4, letter or legal")),
		mcp.WithString("orientation", mcp.Description("PDF orientation: portrait or landscape")),
		mcp.WithNumber("compression", mcp.Description("PDF compression level 0-9")),
		mcp.WithNumber("brightness", mcp.Description("Image brightness adjustment, -50 to 50")),
		mcp.WithNumber("contrast", mcp.Description("Image contrast adjustment, -50 to 50")),
		mcp.WithNumber("sharpness", mcp.Description("Image sharpening strength, 0 to 10")),
		mcp.WithBoolean("auto_enhance", mcp.Description("Apply automatic color enhancement to images")),
		mcp.WithBoolean("denoise", mcp.Description("Apply noise reduction to images")),
		mcp.WithString("cover_title", mcp.Description("Add a cover page with this title")),
		mcp.WithString("cover_author", mcp.Description("Cover page author line")),
	)

	s.mcp.AddTool(tool, s.handleConvert)
}

func (s *Server) handleConvert(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths := req.GetStringSlice("paths", nil)
	if len(paths) == 0 {
		return mcp.NewToolResultError("paths must list at least one file"), nil
	}
	format, err := req.RequireString("format")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	raw, err := fileio.ReadRawFiles(paths, s.app.Config.MaxFileSize)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.app.Ingest.Ingest(ctx, raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingest: %v", err)), nil
	}
	s.app.Metrics.ObserveIngest(result)
	if len(result.Accepted) == 0 {
		return mcp.NewToolResultError("no supported files among the inputs"), nil
	}

	request := domain.ConversionRequest{
		Items: result.Accepted,
		Conversion: domain.ConversionSpec{
			Format:           domain.OutputFormat(strings.ToLower(format)),
			Quality:          req.GetInt("quality", s.app.Config.DefaultQuality),
			PageSize:         domain.ParsePageSize(req.GetString("page_size", s.app.Config.DefaultPageSize)),
			Orientation:      domain.ParseOrientation(req.GetString("orientation", s.app.Config.DefaultOrientation)),
			MergeFiles:       req.GetBool("merge", true),
			IncludeMetadata:  req.GetBool("include_metadata", false),
			CompressionLevel: req.GetInt("compression", s.app.Config.DefaultCompression),
		},
		Enhancement: domain.EnhancementSpec{
			Brightness:  req.GetInt("brightness", 0),
			Contrast:    req.GetInt("contrast", 0),
			Sharpness:   req.GetInt("sharpness", 0),
			AutoEnhance: req.GetBool("auto_enhance", false),
			Denoise:     req.GetBool("denoise", false),
		},
	}
	if title := req.GetString("cover_title", ""); title != "" {
		request.Cover = &domain.CoverPageSpec{
			Title:  title,
			Author: req.GetString("cover_author", ""),
		}
	}

	artifacts, err := s.app.Convert.Convert(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("convert: %v", err)), nil
	}

	outDir := req.GetString("output_dir", s.app.Config.OutputDir)
	written, err := fileio.WriteArtifacts(outDir, artifacts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.app.Logger.InfoContext(ctx, "mcp conversion complete",
		slog.String("format", format),
		slog.Int("inputs", len(result.Accepted)),
		slog.Int("outputs", len(written)),
	)

	payload, err := json.MarshalIndent(convertReply{
		Format:   format,
		Accepted: len(result.Accepted),
		Rejected: rejectedNames(result.Rejected),
		Outputs:  written,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode reply: %w", err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}

type convertReply struct {
	Format   string   `json:"format"`
	Accepted int      `json:"accepted"`
	Rejected []string `json:"rejected,omitempty"`
	Outputs  []string `json:"outputs"`
}

func rejectedNames(files []domain.RawFile) []string {
	if len(files) == 0 {
		return nil
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	return names
}

func (s *Server) registerFormatsTool() {
	tool := mcp.NewTool("list_formats",
		mcp.WithDescription("List the supported output formats and which of them merge inputs into a single document."),
	)

	s.mcp.AddTool(tool, func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		type formatInfo struct {
			Format   string `json:"format"`
			PerImage bool   `json:"per_image"`
		}
		infos := make([]formatInfo, 0, len(domain.OutputFormats()))
		for _, f := range domain.OutputFormats() {
			infos = append(infos, formatInfo{Format: string(f), PerImage: f.PerImage()})
		}
		payload, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode formats: %w", err)
		}
		return mcp.NewToolResultText(string(payload)), nil
	})
}

func (s *Server) registerMergeTool() {
	tool := mcp.NewTool("merge_pdfs",
		mcp.WithDescription("Merge multiple PDF files into one, preserving the given order."),
		mcp.WithArray("paths",
			mcp.Required(),
			mcp.Description("PDF file paths, in merge order"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("output", mcp.Description("Destination path for the merged PDF (default merged.pdf in the output dir)")),
	)

	s.mcp.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		paths := req.GetStringSlice("paths", nil)
		if len(paths) < 2 {
			return mcp.NewToolResultError("paths must list at least two PDFs"), nil
		}

		inputs := make([][]byte, 0, len(paths))
		for _, p := range paths {
			data, err := os.ReadFile(p)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("read %s: %v", p, err)), nil
			}
			inputs = append(inputs, data)
		}

		merged, err := s.app.Merger.Merge(ctx, inputs)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("merge: %v", err)), nil
		}

		out := req.GetString("output", "")
		if out == "" {
			out = filepath.Join(s.app.Config.OutputDir, "merged.pdf")
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("create output dir: %v", err)), nil
		}
		if err := os.WriteFile(out, merged, 0o644); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("write %s: %v", out, err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("merged %d PDFs into %s (%d bytes)", len(paths), out, len(merged))), nil
	})
}
