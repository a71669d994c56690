package domain

// MergedBaseName is the fixed base name for single-artifact formats.
const MergedBaseName = "converted-documents"

// Artifact is one named output delivered back to the caller.
type Artifact struct {
	Name     string
	MimeType string
	Data     []byte
}

// MimeTypeFor maps an output format to the artifact media type.
func MimeTypeFor(f OutputFormat) string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatTXT:
		return "text/plain; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatRTF:
		return "application/rtf"
	case FormatPNG:
		return "image/png"
	case FormatJPG:
		return "image/jpeg"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
