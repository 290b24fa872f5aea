//go:build tinygo

package app

import (
	"pastfuture/hal"
	"pastfuture/sparkos/face"
	"pastfuture/sparkos/tasks/watchface"
)

// No filesystem on the device; the generated labels are used.
func loadImages(hal.Logger, Config, face.Layout) watchface.Images {
	return watchface.Images{}
}
