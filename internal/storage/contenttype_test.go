package storage

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuessContentType_ByExtension(t *testing.T) {
	assert.Equal(t, "image/png", GuessContentType("photo.png", nil))
	assert.Equal(t, "image/png", GuessContentType("PHOTO.PNG", nil))
	assert.Equal(t, "application/pdf", GuessContentType("doc.pdf", nil))
}

func TestGuessContentType_Default(t *testing.T) {
	assert.Equal(t, DefaultContentType, GuessContentType("blob.unknownext", nil))
	assert.Equal(t, DefaultContentType, GuessContentType("blob.unknownext", bytes.NewReader([]byte{0x13, 0x37, 0x00, 0x42, 0x99})))
}

func TestGuessContentType_SniffsAndRewinds(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	r := bytes.NewReader(png)

	assert.Equal(t, "image/png", GuessContentType("noext", r))

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, png, rest)
}
