//go:build !tinygo

package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadConfig overlays the file at path onto DefaultConfig. The format follows
// the extension: .yaml/.yml is YAML, anything else TOML. An empty path or a
// missing file yields the defaults. The time zone is resolved at startup,
// where an unknown zone falls back to local time.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		_, err = toml.Decode(string(data), &cfg)
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
