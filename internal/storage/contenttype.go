package storage

import (
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const DefaultContentType = "application/octet-stream"

// GuessContentType looks the extension up first and only sniffs content
// when the extension is unknown. r is rewound before returning.
func GuessContentType(name string, r io.ReadSeeker) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	if r == nil {
		return DefaultContentType
	}

	mt, err := mimetype.DetectReader(r)
	if _, seekErr := r.Seek(0, io.SeekStart); seekErr != nil || err != nil || mt == nil {
		return DefaultContentType
	}
	return mt.String()
}
