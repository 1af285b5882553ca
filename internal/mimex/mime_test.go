package mimex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentType(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"report.pdf", "application/pdf"},
		{"archive.zip", "application/zip"},
		{"photo.png", "image/png"},
		{"notes.txt", "text/plain"},
		{"noextension", DefaultContentType},
		{"weird.xyzzy", DefaultContentType},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ContentType(tt.file), tt.file)
	}
}
