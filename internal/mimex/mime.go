// Package mimex infers a content type from a file name extension.
package mimex

import (
	"mime"
	"path/filepath"
	"strings"
)

// DefaultContentType is used when the extension is unknown.
const DefaultContentType = "application/octet-stream"

// ContentType returns the MIME type for fileName based on its
// extension, falling back to DefaultContentType. Any parameters
// (e.g. "; charset=utf-8") are stripped.
func ContentType(fileName string) string {
	ct := mime.TypeByExtension(filepath.Ext(fileName))
	if ct == "" {
		return DefaultContentType
	}
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}
