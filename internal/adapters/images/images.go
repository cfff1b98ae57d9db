// Package images renders rune card assets for HTTP delivery.
package images

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"

	"github.com/nfnt/resize"

	"github.com/randomtoy/volva-go/internal/domain"
)

// Allowed render sizes; requests outside the range are clamped.
const (
	MinSize     = 300
	MaxSize     = 800
	DefaultSize = 500
)

const jpegQuality = 90

// Render loads a rune image, scales it to fit within a size x size box while
// keeping the aspect ratio, and rotates it 180 degrees when the rune is
// reversed.
func Render(path string, size int, reversed bool) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if size < MinSize {
		size = MinSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoImage, path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrNoImage, path, err)
	}

	img = resize.Thumbnail(uint(size), uint(size), img, resize.Lanczos3)
	if reversed {
		img = rotate180(img)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func rotate180(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(w-1-x, h-1-y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}
