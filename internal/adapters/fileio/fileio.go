// Package fileio bridges filesystem collaborators (CLI, MCP) to the
// in-memory ingestion boundary.
package fileio

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

// fallbackTypes covers extensions the platform mime table may miss.
var fallbackTypes = map[string]string{
	".md":   "text/markdown",
	".rtf":  "application/rtf",
	".txt":  "text/plain",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".pdf":  "application/pdf",
	".html": "text/html",
	".htm":  "text/html",
}

// DetectMime resolves the declared media type for a file name.
func DetectMime(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := fallbackTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

// ReadRawFiles loads paths into raw file descriptors for ingestion.
func ReadRawFiles(paths []string, maxSize int64) ([]domain.RawFile, error) {
	files := make([]domain.RawFile, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if maxSize > 0 && info.Size() > maxSize {
			return nil, fmt.Errorf("file too large: %s (%d bytes, max %d)", p, info.Size(), maxSize)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		files = append(files, domain.RawFile{
			Name:     filepath.Base(p),
			MimeType: DetectMime(p),
			Size:     info.Size(),
			Data:     data,
		})
	}
	return files, nil
}

// WriteArtifacts stores delivered artifacts under dir.
func WriteArtifacts(dir string, artifacts []domain.Artifact) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := filepath.Join(dir, a.Name)
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
