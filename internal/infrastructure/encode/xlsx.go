package encode

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

const itemsSheet = "Items"

// XLSXEncoder writes the item table as a workbook, mirroring the CSV
// columns, plus a Metadata sheet when metadata is requested.
type XLSXEncoder struct{}

func NewXLSXEncoder() *XLSXEncoder {
	return &XLSXEncoder{}
}

func (e *XLSXEncoder) Format() domain.OutputFormat {
	return domain.FormatXLSX
}

func (e *XLSXEncoder) Encode(_ context.Context, job domain.EncodeJob) ([]domain.Artifact, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", itemsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"Filename", "Type", "Size (KB)", "Content Preview"}
	if err := f.SetSheetRow(itemsSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, it := range job.Items {
		row := []any{it.Name, string(it.Category), sizeKB(it.Size), csvPreview(it)}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(itemsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if job.Metadata != nil {
		if err := writeMetadataSheet(f, job.Metadata); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return []domain.Artifact{{
		Name:     artifactName(job, domain.FormatXLSX),
		MimeType: domain.MimeTypeFor(domain.FormatXLSX),
		Data:     buf.Bytes(),
	}}, nil
}

func writeMetadataSheet(f *excelize.File, meta *domain.Metadata) error {
	const sheet = "Metadata"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("add metadata sheet: %w", err)
	}

	rows := [][]any{
		{"Title", meta.Title},
		{"Author", meta.Author},
		{"Generated At", meta.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
		{"Total Items", meta.TotalItems},
		{"Images", meta.ImageCount},
		{"Documents", meta.DocumentCount},
		{"PDFs", meta.PDFCount},
		{"Output Format", string(meta.Conversion.Format)},
		{"Quality", meta.Conversion.Quality},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write metadata row: %w", err)
		}
	}
	return nil
}
