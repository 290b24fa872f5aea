//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"pastfuture/app"
	"pastfuture/hal"
	"pastfuture/sparkos/face"
)

func main() {
	var cfg hal.HeadlessConfig
	var configPath, granularity string
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Frame rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N frames in headless mode (0 = run forever).")
	flag.StringVar(&cfg.Snapshot, "snapshot", "", "Write the last frame as PNG when headless mode stops.")
	flag.StringVar(&configPath, "config", "", "TOML or YAML config file.")
	flag.StringVar(&granularity, "granularity", "", "Tick granularity: minute or second (overrides config).")
	flag.Parse()

	appCfg, err := app.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if granularity != "" {
		g, err := face.ParseGranularity(granularity)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		appCfg.Granularity = g
	}

	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, appCfg)
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
