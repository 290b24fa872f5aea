//go:build !tinygo

package app

import (
	"pastfuture/hal"
	"pastfuture/sparkos/face"
	"pastfuture/sparkos/tasks/watchface"
)

// loadImages decodes the configured pictures. A file that fails to load is
// logged and replaced by the generated label.
func loadImages(log hal.Logger, cfg Config, layout face.Layout) watchface.Images {
	var images watchface.Images
	images.Future = loadImage(log, cfg.FutureImage, layout.Future.Dx(), layout.Future.Dy())
	images.Past = loadImage(log, cfg.PastImage, layout.Past.Dx(), layout.Past.Dy())
	return images
}

func loadImage(log hal.Logger, path string, w, h int) *watchface.Bitmap {
	if path == "" {
		return nil
	}
	b, err := watchface.LoadBitmap(path, w, h)
	if err != nil {
		if log != nil {
			log.WriteLineString("image: " + err.Error())
		}
		return nil
	}
	return b
}
