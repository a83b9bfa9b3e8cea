package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/nfnt/resize"
)

// ErrInvalidImage upload is not a decodable image
var ErrInvalidImage = errors.New("file is not a supported image (jpeg, png, gif)")

const (
	imagePrefix      = "attires/"
	imageContentType = "image/jpeg"
	jpegQuality      = 80
)

// processImage decodes any supported format, scales down to width (keeping
// aspect ratio) and re-encodes as JPEG. Narrower images keep their size.
func processImage(data []byte, width uint) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidImage
	}

	if width > 0 && uint(img.Bounds().Dx()) > width {
		img = resize.Resize(width, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// imagePath attires/<slug(name)>-<uuid>.jpg
func imagePath(name string) string {
	s := slug.Make(name)
	if s == "" {
		s = "attire"
	}
	return imagePrefix + s + "-" + uuid.NewString() + ".jpg"
}

// isImagePath reports whether path lives under the attire image prefix
func isImagePath(path string) bool {
	return strings.HasPrefix(path, imagePrefix) && !strings.Contains(path, "..")
}
