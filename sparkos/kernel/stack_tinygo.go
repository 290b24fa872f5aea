//go:build tinygo

package kernel

// TinyGo has no runtime/debug.Stack; the panic screen prints "stack: unavailable".
func captureStack() []byte { return nil }
