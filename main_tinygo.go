//go:build tinygo

package main

import (
	"pastfuture/app"
	"pastfuture/hal"
)

func main() {
	app.Run(hal.New())
}
