package app

import "pastfuture/sparkos/face"

// Config is fixed at startup.
type Config struct {
	Granularity face.Granularity `toml:"granularity" yaml:"granularity"`
	Timezone    string           `toml:"timezone" yaml:"timezone"`

	// FutureImage and PastImage are PNG or BMP files. Empty means the
	// generated labels.
	FutureImage string `toml:"future_image" yaml:"future_image"`
	PastImage   string `toml:"past_image" yaml:"past_image"`
}

func DefaultConfig() Config {
	return Config{Granularity: face.PerMinute}
}
