package domain

import (
	"strings"
	"time"
)

type OutputFormat string

const (
	FormatPDF      OutputFormat = "pdf"
	FormatTXT      OutputFormat = "txt"
	FormatHTML     OutputFormat = "html"
	FormatMarkdown OutputFormat = "markdown"
	FormatCSV      OutputFormat = "csv"
	FormatJSON     OutputFormat = "json"
	FormatRTF      OutputFormat = "rtf"
	FormatPNG      OutputFormat = "png"
	FormatJPG      OutputFormat = "jpg"
	FormatXLSX     OutputFormat = "xlsx"
)

// OutputFormats lists every supported output format.
func OutputFormats() []OutputFormat {
	return []OutputFormat{
		FormatPDF, FormatTXT, FormatHTML, FormatMarkdown, FormatCSV,
		FormatJSON, FormatRTF, FormatPNG, FormatJPG, FormatXLSX,
	}
}

// PerImage reports whether the format produces one artifact per image item
// instead of a single merged artifact.
func (f OutputFormat) PerImage() bool {
	return f == FormatPNG || f == FormatJPG
}

// Extension returns the artifact file extension without the dot.
func (f OutputFormat) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

type PageSize string

const (
	PageA4     PageSize = "A4"
	PageLetter PageSize = "Letter"
	PageLegal  PageSize = "Legal"
)

// ParsePageSize canonicalizes a user-supplied page size. Unknown values
// fall back to A4.
func ParsePageSize(s string) PageSize {
	switch strings.ToLower(s) {
	case "letter":
		return PageLetter
	case "legal":
		return PageLegal
	default:
		return PageA4
	}
}

type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// ParseOrientation canonicalizes a user-supplied orientation. Unknown
// values fall back to portrait.
func ParseOrientation(s string) Orientation {
	if strings.ToLower(s) == "landscape" {
		return OrientationLandscape
	}
	return OrientationPortrait
}

// CoverPageSpec is the user-authored metadata for the optional leading
// page. It is snapshotted when a conversion starts; later edits never
// affect an already generated artifact.
type CoverPageSpec struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle,omitempty"`
	Author          string `json:"author,omitempty"`
	Date            string `json:"date,omitempty"` // free-form, not parsed
	Description     string `json:"description,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"` // hex, e.g. #ffffff
	TextColor       string `json:"text_color,omitempty"`
}

// EnhancementSpec holds the per-conversion image adjustments. They apply
// uniformly to every image item of a single run.
type EnhancementSpec struct {
	Brightness  int  `json:"brightness"` // -50..50
	Contrast    int  `json:"contrast"`   // -50..50
	Sharpness   int  `json:"sharpness"`  // 0..10
	AutoEnhance bool `json:"auto_enhance"`
	Denoise     bool `json:"denoise"`
}

// IsZero reports whether the spec requests no adjustment at all, in which
// case enhancement degrades to a plain re-encode.
func (s EnhancementSpec) IsZero() bool {
	return s.Brightness == 0 && s.Contrast == 0 && s.Sharpness == 0 &&
		!s.AutoEnhance && !s.Denoise
}

// ConversionSpec is the full conversion request handed to the orchestrator.
type ConversionSpec struct {
	Format           OutputFormat `json:"format"`
	Quality          int          `json:"quality"`     // 1..100, lossy encodes only
	PageSize         PageSize     `json:"page_size"`   // page-oriented formats only
	Orientation      Orientation  `json:"orientation"` // page-oriented formats only
	MergeFiles       bool         `json:"merge_files"`
	IncludeMetadata  bool         `json:"include_metadata"`
	CompressionLevel int          `json:"compression_level"` // 0..9, advisory
}

// Metadata is computed once per run when IncludeMetadata is set.
type Metadata struct {
	Title         string         `json:"title"`
	Author        string         `json:"author"`
	GeneratedAt   time.Time      `json:"generated_at"`
	TotalItems    int            `json:"total_items"`
	ImageCount    int            `json:"image_count"`
	DocumentCount int            `json:"document_count"`
	PDFCount      int            `json:"pdf_count"`
	Conversion    ConversionSpec `json:"conversion"`
}

// BuildMetadata derives the metadata block from the run snapshot.
func BuildMetadata(items []FileItem, cover *CoverPageSpec, conv ConversionSpec, now time.Time) *Metadata {
	m := &Metadata{
		Title:       "Converted Documents",
		GeneratedAt: now,
		TotalItems:  len(items),
		Conversion:  conv,
	}
	if cover != nil {
		if cover.Title != "" {
			m.Title = cover.Title
		}
		m.Author = cover.Author
	}
	for _, it := range items {
		switch it.Category {
		case CategoryImage:
			m.ImageCount++
		case CategoryDocument:
			m.DocumentCount++
		case CategoryPDF:
			m.PDFCount++
		}
	}
	return m
}

// ConversionRequest bundles everything a single run consumes. Items is an
// isolated snapshot of the ordering store taken when the run starts.
type ConversionRequest struct {
	Items       []FileItem
	Conversion  ConversionSpec
	Enhancement EnhancementSpec
	Cover       *CoverPageSpec // nil means no cover page
}

// EncodeJob is what an encoder receives: the snapshot, the rendered cover
// (PNG bytes, nil when absent), the specs, and the optional metadata.
type EncodeJob struct {
	Items       []FileItem
	CoverSpec   *CoverPageSpec
	CoverImage  []byte
	Enhancement EnhancementSpec
	Conversion  ConversionSpec
	Metadata    *Metadata
	GeneratedAt time.Time
}

// RunState is the orchestrator lifecycle. idle is both the initial state
// and the state reached after done/failed settle.
type RunState string

const (
	RunIdle    RunState = "idle"
	RunRunning RunState = "running"
	RunDone    RunState = "done"
	RunFailed  RunState = "failed"
)
