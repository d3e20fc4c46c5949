package imagex

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffkeeper/internal/models"
)

// makePNG renders a solid-color PNG of the given dimensions.
func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPreparePhoto_SmallImagePassesThrough(t *testing.T) {
	att := &models.FileAttachment{
		Name:        "small.png",
		ContentType: "image/png",
		Data:        makePNG(t, 200, 100),
	}

	got, err := PreparePhoto(att)
	require.NoError(t, err)
	assert.Same(t, att, got, "small photos must not be re-encoded")
}

func TestPreparePhoto_OversizedImageIsDownscaled(t *testing.T) {
	att := &models.FileAttachment{
		Name:        "big.png",
		ContentType: "image/png",
		Data:        makePNG(t, 2400, 1200),
	}

	got, err := PreparePhoto(att)
	require.NoError(t, err)
	require.NotSame(t, att, got)

	img, err := imaging.Decode(bytes.NewReader(got.Data))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), maxPhotoEdge)
	assert.LessOrEqual(t, img.Bounds().Dy(), maxPhotoEdge)

	// Aspect ratio survives the resize.
	assert.Equal(t, 2, img.Bounds().Dx()/img.Bounds().Dy())

	assert.Equal(t, "big.png", got.Name)
	assert.Equal(t, "image/png", got.ContentType)
}

func TestPreparePhoto_RejectsNonImage(t *testing.T) {
	att := &models.FileAttachment{
		Name:        "notes.txt",
		ContentType: "text/plain",
		Data:        []byte("definitely not pixels"),
	}

	_, err := PreparePhoto(att)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestPreparePhoto_NilPassesThrough(t *testing.T) {
	got, err := PreparePhoto(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCheckDocument(t *testing.T) {
	t.Run("pdf within cap passes untouched", func(t *testing.T) {
		att := &models.FileAttachment{Name: "id.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4 tiny")}
		assert.NoError(t, CheckDocument(att))
	})

	t.Run("oversized document rejected", func(t *testing.T) {
		att := &models.FileAttachment{Name: "scan.pdf", Data: make([]byte, MaxUploadSize+1)}
		assert.ErrorIs(t, CheckDocument(att), ErrTooLarge)
	})

	t.Run("nil document allowed", func(t *testing.T) {
		assert.NoError(t, CheckDocument(nil))
	})
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF(&models.FileAttachment{ContentType: "application/pdf"}))
	assert.True(t, IsPDF(&models.FileAttachment{Data: []byte("%PDF-1.7")}))
	assert.False(t, IsPDF(&models.FileAttachment{ContentType: "image/png", Data: []byte{0x89}}))
	assert.False(t, IsPDF(nil))
}
