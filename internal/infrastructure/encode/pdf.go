package encode

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/dkhalturin/docforge/internal/core/domain"
	"github.com/dkhalturin/docforge/internal/core/ports"
)

const pdfMargin = 15.0 // mm

// PDFEncoder lays out one page per item: images centered and aspect-fit,
// documents as a heading plus word-wrapped body that paginates on
// overflow, pdf-category items as a placeholder notice. The cover, when
// present, is page one.
type PDFEncoder struct {
	enhancer  ports.ImageEnhancer
	optimizer ports.PDFOptimizer
}

func NewPDFEncoder(enhancer ports.ImageEnhancer, optimizer ports.PDFOptimizer) *PDFEncoder {
	return &PDFEncoder{enhancer: enhancer, optimizer: optimizer}
}

func (e *PDFEncoder) Format() domain.OutputFormat {
	return domain.FormatPDF
}

func (e *PDFEncoder) Encode(ctx context.Context, job domain.EncodeJob) ([]domain.Artifact, error) {
	orientation := "P"
	if job.Conversion.Orientation == domain.OrientationLandscape {
		orientation = "L"
	}
	size := string(job.Conversion.PageSize)
	if size == "" {
		size = "A4"
	}

	pdf := gofpdf.New(orientation, "mm", size, "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)

	title := "Converted Documents"
	author := ""
	if job.CoverSpec != nil {
		if job.CoverSpec.Title != "" {
			title = job.CoverSpec.Title
		}
		author = job.CoverSpec.Author
	}
	pdf.SetTitle(title, true)
	if author != "" {
		pdf.SetAuthor(author, true)
	}

	if len(job.CoverImage) > 0 {
		e.addCoverPage(pdf, job.CoverImage)
	}

	for i, it := range job.Items {
		pdf.AddPage()
		switch it.Category {
		case domain.CategoryImage:
			if err := e.addImagePage(ctx, pdf, it, job, i); err != nil {
				return nil, err
			}
		case domain.CategoryDocument:
			addDocumentPage(pdf, tr, it)
		case domain.CategoryPDF:
			addPDFPlaceholderPage(pdf, tr, it)
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("build pdf: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	data := buf.Bytes()
	if e.optimizer != nil && job.Conversion.CompressionLevel > 0 {
		optimized, err := e.optimizer.Optimize(ctx, data, job.Conversion.CompressionLevel)
		if err == nil {
			data = optimized
		}
		// Optimization is advisory; failures fall back to the raw bytes.
	}

	return []domain.Artifact{{
		Name:     artifactName(job, domain.FormatPDF),
		MimeType: domain.MimeTypeFor(domain.FormatPDF),
		Data:     data,
	}}, nil
}

// addCoverPage draws the rendered cover raster over the whole first page,
// with no page break before it.
func (e *PDFEncoder) addCoverPage(pdf *gofpdf.Fpdf, cover []byte) {
	pdf.AddPage()
	w, h := pdf.GetPageSize()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("__cover__", opts, bytes.NewReader(cover))
	pdf.ImageOptions("__cover__", 0, 0, w, h, false, opts, 0, "")
}

func (e *PDFEncoder) addImagePage(ctx context.Context, pdf *gofpdf.Fpdf, it domain.FileItem, job domain.EncodeJob, index int) error {
	data := it.Data
	imageType := pdfImageType(it.MimeType)

	// Re-encode when any enhancement option is active, and also when the
	// source codec is one gofpdf cannot embed directly.
	if !job.Enhancement.IsZero() || imageType == "" {
		enhanced, err := e.enhancer.Enhance(ctx, it.Data, job.Enhancement, ports.EncodingJPEG, job.Conversion.Quality)
		if err != nil {
			return fmt.Errorf("enhance %s: %w", it.Name, err)
		}
		data = enhanced
		imageType = "JPG"
	}

	name := fmt.Sprintf("item-%d", index)
	opts := gofpdf.ImageOptions{ImageType: imageType}
	info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if pdf.Err() {
		return domain.WrapError(domain.ErrDecodeFailure, "embed image", pdf.Error())
	}

	pageW, pageH := pdf.GetPageSize()
	availW := pageW - 2*pdfMargin
	availH := pageH - 2*pdfMargin

	imgW, imgH := info.Extent()
	scale := availW / imgW
	if availH/imgH < scale {
		scale = availH / imgH
	}
	if scale > 1 {
		scale = 1
	}

	w := imgW * scale
	h := imgH * scale
	x := pdfMargin + (availW-w)/2
	y := pdfMargin + (availH-h)/2

	pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return nil
}

func addDocumentPage(pdf *gofpdf.Fpdf, tr func(string) string, it domain.FileItem) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, tr(it.Name), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	if text, ok := it.Text(); ok {
		pdf.MultiCell(0, 5, tr(text), "", "L", false)
	} else {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 5, "Content unavailable", "", "L", false)
	}
}

func addPDFPlaceholderPage(pdf *gofpdf.Fpdf, tr func(string) string, it domain.FileItem) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, tr(it.Name), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 11)
	notice := fmt.Sprintf("PDF document (%s MB) - content not merged", sizeMB(it.Size))
	if it.PageCount > 0 {
		notice = fmt.Sprintf("PDF document (%s MB, %d pages) - content not merged", sizeMB(it.Size), it.PageCount)
	}
	pdf.MultiCell(0, 5, tr(notice), "", "L", false)
}

func pdfImageType(mimeType string) string {
	switch mimeType {
	case "image/jpeg", "image/jpg":
		return "JPG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	default:
		return ""
	}
}
