// Package imagex prepares file attachments for upload. It validates
// and, when needed, downsizes photos before they are put on the wire,
// so the backend's size cap is never hit by a predictable failure.
package imagex

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"staffkeeper/internal/models"
)

// MaxUploadSize is the backend's documented per-file cap.
const MaxUploadSize = 5 * 1024 * 1024

// maxPhotoEdge bounds the longer edge of an uploaded photo. Anything
// larger is display overkill and gets downscaled.
const maxPhotoEdge = 1600

var (
	ErrTooLarge = errors.New("file too large (max 5MB)")
	ErrNotImage = errors.New("file is not a supported image")
)

// PreparePhoto validates a photo attachment and returns an upload-ready
// version. Small images pass through untouched; oversized ones are
// downscaled with Lanczos resampling and re-encoded. A nil attachment
// stays nil.
func PreparePhoto(att *models.FileAttachment) (*models.FileAttachment, error) {
	if att == nil {
		return nil, nil
	}

	img, err := imaging.Decode(bytes.NewReader(att.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	bounds := img.Bounds()
	withinEdge := bounds.Dx() <= maxPhotoEdge && bounds.Dy() <= maxPhotoEdge
	if withinEdge && int64(len(att.Data)) <= MaxUploadSize {
		return att, nil
	}

	if !withinEdge {
		img = imaging.Fit(img, maxPhotoEdge, maxPhotoEdge, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, formatFor(att)); err != nil {
		return nil, fmt.Errorf("re-encode photo: %w", err)
	}
	if int64(buf.Len()) > MaxUploadSize {
		return nil, ErrTooLarge
	}

	return &models.FileAttachment{
		Name:        att.Name,
		ContentType: att.ContentType,
		Data:        buf.Bytes(),
	}, nil
}

// CheckDocument validates an identity document attachment. Documents
// are not decoded or transformed; PDFs in particular pass through
// untouched. Only the size cap is enforced.
func CheckDocument(att *models.FileAttachment) error {
	if att == nil {
		return nil
	}
	if int64(len(att.Data)) > MaxUploadSize {
		return ErrTooLarge
	}
	return nil
}

// IsPDF reports whether the attachment looks like a PDF, by declared
// content type or by magic bytes.
func IsPDF(att *models.FileAttachment) bool {
	if att == nil {
		return false
	}
	if strings.EqualFold(att.ContentType, "application/pdf") {
		return true
	}
	return bytes.HasPrefix(att.Data, []byte("%PDF"))
}

// formatFor picks the encoding format from the filename, falling back
// to JPEG for anything unknown.
func formatFor(att *models.FileAttachment) imaging.Format {
	format, err := imaging.FormatFromExtension(filepath.Ext(att.Name))
	if err != nil {
		return imaging.JPEG
	}
	return format
}
