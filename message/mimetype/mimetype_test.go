package mimetype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mimetree/message/mimetype"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "image/png", mimetype.Detect("png"))
	assert.Equal(t, "image/png", mimetype.Detect("PNG"))
	assert.Equal(t, "image/png", mimetype.Detect(".png"))
	assert.Equal(t, "text/plain", mimetype.Detect("txt"))
	assert.Equal(t, "application/pdf", mimetype.Detect("pdf"))
	assert.Equal(t, mimetype.Fallback, mimetype.Detect(""))
	assert.Equal(t, mimetype.Fallback, mimetype.Detect("no-such-extension-here"))
}

func TestDetectFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "image/jpeg", mimetype.DetectFilename("holiday.photo.JPG"))
	assert.Equal(t, "application/zip", mimetype.DetectFilename("zip"))
	assert.Equal(t, mimetype.Fallback, mimetype.DetectFilename("README"))
}
