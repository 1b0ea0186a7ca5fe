// Package imageproc validates uploaded images and shrinks them before they
// are sent to the image host.
package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/disintegration/imaging"
)

const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
	MimeGIF  = "image/gif"
	MimeWEBP = "image/webp"
)

var (
	ErrEmpty           = errors.New("imageproc: empty image")
	ErrTooLarge        = errors.New("imageproc: image too large")
	ErrUnsupportedType = errors.New("imageproc: unsupported image type")
	ErrDecode          = errors.New("imageproc: decode image")
)

type Options struct {
	MaxBytes    int64
	MaxEdge     int
	JPEGQuality int
}

// Result is the encoded image ready for upload
type Result struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// DetectType sniffs the content type and accepts only the formats above
func DetectType(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	ct := http.DetectContentType(data)
	switch ct {
	case MimeJPEG, MimePNG, MimeGIF, MimeWEBP:
		return ct, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ct)
	}
}

// Normalize fits the image into MaxEdge x MaxEdge and re-encodes it as JPEG.
// WEBP is passed through untouched since there is no decoder registered for it.
func Normalize(data []byte, opts Options) (*Result, error) {
	if opts.MaxBytes > 0 && int64(len(data)) > opts.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), opts.MaxBytes)
	}

	ct, err := DetectType(data)
	if err != nil {
		return nil, err
	}
	if ct == MimeWEBP {
		return &Result{Data: data, ContentType: ct}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if opts.MaxEdge > 0 {
		b := img.Bounds()
		if b.Dx() > opts.MaxEdge || b.Dy() > opts.MaxEdge {
			img = imaging.Fit(img, opts.MaxEdge, opts.MaxEdge, imaging.Lanczos)
		}
	}

	quality := opts.JPEGQuality
	if quality <= 0 || quality > 100 {
		quality = 85
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	b := img.Bounds()
	return &Result{
		Data:        buf.Bytes(),
		ContentType: MimeJPEG,
		Width:       b.Dx(),
		Height:      b.Dy(),
	}, nil
}
