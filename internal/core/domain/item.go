package domain

import "time"

type Category string

const (
	CategoryImage    Category = "image"
	CategoryDocument Category = "document"
	CategoryPDF      Category = "pdf"
)

// RawFile is one user-supplied file descriptor as handed over by the
// ingestion boundary: declared media type, name, and the full byte source.
type RawFile struct {
	Name     string
	MimeType string
	Size     int64
	Data     []byte
}

// FileItem is the processed representation of one accepted file.
// Category is assigned once by the classifier and never changes.
type FileItem struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	MimeType string    `json:"mime_type"`
	Size     int64     `json:"size"`
	Category Category  `json:"category"`
	AddedAt  time.Time `json:"added_at"`

	// TextContent is set only for document items whose bytes decoded as
	// UTF-8 text. nil means "no content" (decode failed or non-document),
	// which is distinct from an empty string.
	TextContent *string `json:"text_content,omitempty"`

	// Data holds the raw bytes for image items; released when the item is
	// removed from the ordering store. Documents keep only TextContent and
	// pdf items keep only Size (and a best-effort PageCount).
	Data []byte `json:"-"`

	// PageCount is a best-effort probe result for pdf items; 0 when the
	// probe failed or was skipped. No page content is ever extracted.
	PageCount int `json:"page_count,omitempty"`

	// Preview is a short derived string used for presentation only.
	Preview string `json:"-"`
}

// Text returns the document text and whether any content is present.
func (it *FileItem) Text() (string, bool) {
	if it.TextContent == nil {
		return "", false
	}
	return *it.TextContent, true
}

// Release drops the byte handle so removed items do not accumulate
// decoded file contents across add/remove cycles.
func (it *FileItem) Release() {
	it.Data = nil
}

// IngestResult reports both sides of a classification pass: the accepted
// batch, in ingestion order, and the descriptors that were excluded.
// Rejected files never reach the conversion path.
type IngestResult struct {
	Accepted []FileItem
	Rejected []RawFile
}
