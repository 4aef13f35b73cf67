package filetypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_KnownFormats(t *testing.T) {
	info := Classify("application/pdf")
	assert.Equal(t, "Document", info.Category)
	assert.Equal(t, PreviewPDF, info.Preview)

	info = Classify("image/png")
	assert.Equal(t, PreviewImage, info.Preview)

	info = Classify("video/mp4")
	assert.Equal(t, PreviewVideo, info.Preview)

	info = Classify("audio/mpeg")
	assert.Equal(t, PreviewAudio, info.Preview)
}

func TestClassify_NormalizesInput(t *testing.T) {
	assert.Equal(t, Classify("image/png"), Classify("  IMAGE/PNG "))
}

func TestClassify_UnknownFormatFallsBack(t *testing.T) {
	info := Classify("application/x-made-up")
	assert.Equal(t, "Unknown", info.Category)
	assert.Equal(t, PreviewNone, info.Preview)
	assert.NotEmpty(t, info.Icon)

	info = Classify("")
	assert.Equal(t, "Unknown", info.Category)
}

func TestClassify_TableIsComplete(t *testing.T) {
	for format, info := range fileTypes {
		assert.NotEmpty(t, info.Category, "format %s", format)
		assert.NotEmpty(t, info.Icon, "format %s", format)
		assert.NotEmpty(t, info.Preview, "format %s", format)
	}
}

func TestCanPreview(t *testing.T) {
	assert.True(t, CanPreview("image/jpeg"))
	assert.True(t, CanPreview("application/pdf"))
	assert.True(t, CanPreview("text/plain"))
	assert.True(t, CanPreview("audio/wav"))
	// office formats have no inline renderer
	assert.False(t, CanPreview("application/msword"))
	assert.False(t, CanPreview("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
	assert.False(t, CanPreview("application/zip"))
	assert.False(t, CanPreview("application/x-made-up"))
}

func TestKind(t *testing.T) {
	assert.Equal(t, PreviewOffice, Kind("application/vnd.ms-excel"))
	assert.Equal(t, PreviewNone, Kind("application/octet-stream"))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "pdf", Extension("report.PDF"))
	assert.Equal(t, "gz", Extension("archive.tar.gz"))
	assert.Equal(t, "unknown", Extension("README"))
	assert.Equal(t, "unknown", Extension(""))
}
