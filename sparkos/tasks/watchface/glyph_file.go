//go:build !tinygo

package watchface

import (
	"fmt"
	"image"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
)

// LoadBitmap decodes a PNG or BMP file and scales it to w x h.
func LoadBitmap(path string, w, h int) (*Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode image %s: empty %s", path, format)
	}
	return BitmapFromImage(img, w, h), nil
}
