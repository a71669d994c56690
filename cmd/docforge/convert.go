package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dkhalturin/docforge/internal/adapters/fileio"
	"github.com/dkhalturin/docforge/internal/core/domain"
	"github.com/dkhalturin/docforge/internal/core/usecase"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert input files into a single output format",
	Long: `Convert ingests the given files, orders them, and exports them in the
requested format. The argument order is the document order unless
--order name is given, which sorts by file name instead.

Unsupported file types are skipped with a warning; the conversion
proceeds with whatever remains.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.String("format", "pdf", "output format: pdf, txt, html, markdown, csv, json, rtf, png, jpg or xlsx")
	f.String("out", "", "output directory (default: configured output dir)")
	f.String("order", "custom", "item ordering: custom (argument order) or name")
	f.Bool("merge", true, "merge all files into one output document")
	f.Bool("metadata", false, "embed a metadata summary in the output")
	f.Int("quality", 0, "JPEG quality 1-100 (default: configured quality)")
	f.String("page-size", "", "PDF page size: a4, letter or legal")
	f.String("orientation", "", "PDF orientation: portrait or landscape")
	f.Int("compression", -1, "PDF compression level 0-9")
	f.Bool("zip", false, "pack all generated files into a single zip archive")

	f.Int("brightness", 0, "image brightness adjustment, -50 to 50")
	f.Int("contrast", 0, "image contrast adjustment, -50 to 50")
	f.Int("sharpness", 0, "image sharpening strength, 0 to 10")
	f.Bool("auto-enhance", false, "apply automatic color enhancement to images")
	f.Bool("denoise", false, "apply noise reduction to images")

	f.String("cover-title", "", "add a cover page with this title")
	f.String("cover-subtitle", "", "cover page subtitle")
	f.String("cover-author", "", "cover page author line")
	f.String("cover-date", "", "cover page date line")
	f.String("cover-description", "", "cover page description paragraph")
	f.String("cover-bg", "", "cover background color, hex (default white)")
	f.String("cover-color", "", "cover text color, hex (default black)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	f := cmd.Flags()

	raw, err := fileio.ReadRawFiles(args, app.Config.MaxFileSize)
	if err != nil {
		return err
	}

	result, err := app.Ingest.Ingest(ctx, raw)
	if err != nil {
		return fmt.Errorf("ingest files: %w", err)
	}
	app.Metrics.ObserveIngest(result)
	for _, rej := range result.Rejected {
		app.Logger.Warn("skipping unsupported file",
			slog.String("name", rej.Name),
			slog.String("mime_type", rej.MimeType),
		)
	}
	if len(result.Accepted) == 0 {
		return fmt.Errorf("no supported files among %d input(s)", len(args))
	}

	order, _ := f.GetString("order")
	if strings.ToLower(order) == string(usecase.OrderByName) {
		app.Store.SetMode(usecase.OrderByName)
	}
	app.Store.Add(result.Accepted...)

	request := buildRequest(cmd, app.Store.Snapshot())

	artifacts, err := app.Convert.Convert(ctx, request)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	if zip, _ := f.GetBool("zip"); zip {
		packed, err := app.Packer.Pack(ctx, domain.MergedBaseName+".zip", artifacts)
		if err != nil {
			return fmt.Errorf("pack archive: %w", err)
		}
		artifacts = []domain.Artifact{packed}
	}

	outDir, _ := f.GetString("out")
	if outDir == "" {
		outDir = app.Config.OutputDir
	}
	written, err := fileio.WriteArtifacts(outDir, artifacts)
	if err != nil {
		return err
	}

	for _, p := range written {
		cmd.Println(p)
	}
	return nil
}

func buildRequest(cmd *cobra.Command, items []domain.FileItem) domain.ConversionRequest {
	f := cmd.Flags()

	format, _ := f.GetString("format")
	quality, _ := f.GetInt("quality")
	if quality == 0 {
		quality = app.Config.DefaultQuality
	}
	pageSize, _ := f.GetString("page-size")
	if pageSize == "" {
		pageSize = app.Config.DefaultPageSize
	}
	orientation, _ := f.GetString("orientation")
	if orientation == "" {
		orientation = app.Config.DefaultOrientation
	}
	compression, _ := f.GetInt("compression")
	if compression < 0 {
		compression = app.Config.DefaultCompression
	}
	merge, _ := f.GetBool("merge")
	metadata, _ := f.GetBool("metadata")

	brightness, _ := f.GetInt("brightness")
	contrast, _ := f.GetInt("contrast")
	sharpness, _ := f.GetInt("sharpness")
	autoEnhance, _ := f.GetBool("auto-enhance")
	denoise, _ := f.GetBool("denoise")

	req := domain.ConversionRequest{
		Items: items,
		Conversion: domain.ConversionSpec{
			Format:           domain.OutputFormat(strings.ToLower(format)),
			Quality:          quality,
			PageSize:         domain.ParsePageSize(pageSize),
			Orientation:      domain.ParseOrientation(orientation),
			MergeFiles:       merge,
			IncludeMetadata:  metadata,
			CompressionLevel: compression,
		},
		Enhancement: domain.EnhancementSpec{
			Brightness:  brightness,
			Contrast:    contrast,
			Sharpness:   sharpness,
			AutoEnhance: autoEnhance,
			Denoise:     denoise,
		},
	}

	if title, _ := f.GetString("cover-title"); title != "" {
		subtitle, _ := f.GetString("cover-subtitle")
		author, _ := f.GetString("cover-author")
		date, _ := f.GetString("cover-date")
		description, _ := f.GetString("cover-description")
		bg, _ := f.GetString("cover-bg")
		color, _ := f.GetString("cover-color")
		req.Cover = &domain.CoverPageSpec{
			Title:           title,
			Subtitle:        subtitle,
			Author:          author,
			Date:            date,
			Description:     description,
			BackgroundColor: bg,
			TextColor:       color,
		}
	}

	return req
}
