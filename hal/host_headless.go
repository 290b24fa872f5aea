//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled  bool
	Hz       int
	Ticks    uint64
	Snapshot string
}

// RunHeadless runs the face without opening a window.
//
// When Snapshot is set, the last presented frame is written there as PNG on
// a clean stop (tick budget reached or context cancelled).
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	h := New().(*hostHAL)
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			if err := writeSnapshot(h.fb, cfg.Snapshot); err != nil {
				return err
			}
			return ctx.Err()
		case <-t.C:
			h.t.step(1)
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return writeSnapshot(h.fb, cfg.Snapshot)
			}
		}
	}
}

func writeSnapshot(fb *hostFramebuffer, path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot %q: %w", path, err)
	}
	if err := png.Encode(f, fb.snapshotRGBA(nil)); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode snapshot %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot %q: %w", path, err)
	}
	return nil
}
