package app

import (
	"time"

	"pastfuture/hal"
	"pastfuture/internal/buildinfo"
	"pastfuture/sparkos/face"
	"pastfuture/sparkos/kernel"
	"pastfuture/sparkos/services/clock"
	"pastfuture/sparkos/services/logger"
	"pastfuture/sparkos/tasks/watchface"

	"github.com/jonboulle/clockwork"
)

type system struct {
	k *kernel.Kernel
}

// New initializes and starts the face with the default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, DefaultConfig())
}

// Run starts the face and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	_ = New(h)
	select {}
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	_ = newSystem(h, cfg, clockwork.NewRealClock())
	return func() error { return nil }
}

func RunWithConfig(h hal.HAL, cfg Config) {
	_ = NewWithConfig(h, cfg)
	select {}
}

func newSystem(h hal.HAL, cfg Config, clk clockwork.Clock) *system {
	installPanicHandler(h)

	k := kernel.New()

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	clockEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	faceEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	log := h.Logger()
	if log != nil {
		log.WriteLineString("pastfuture " + buildinfo.Short() + " granularity=" + cfg.Granularity.String())
	}

	loc, err := cfg.location()
	if err != nil && log != nil {
		log.WriteLineString("config: " + err.Error() + "; using local time")
	}

	layout := face.DefaultLayout()
	images := loadImages(log, cfg, layout)

	k.AddTask(logger.New(log, logEP.Restrict(kernel.RightRecv)).WithPrefix("pastfuture: "))
	k.AddTask(clock.New(clk, loc, cfg.Granularity, clockEP.Restrict(kernel.RightRecv)).
		WithLogger(logEP.Restrict(kernel.RightSend)))
	k.AddTask(watchface.New(
		h.Display(),
		clockEP.Restrict(kernel.RightSend),
		logEP.Restrict(kernel.RightSend),
		faceEP,
		layout,
		cfg.Granularity,
		images,
	))

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return &system{k: k}
}

// location resolves the configured time zone; empty means local time.
func (c Config) location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local, err
	}
	return loc, nil
}
