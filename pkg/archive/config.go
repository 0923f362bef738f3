// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Archive import and export configuration.

package archive

import (
	"os"

	"github.com/getoutreach/archivebox/pkg/cfg"
	"github.com/getoutreach/archivebox/pkg/orio"
)

// ConfigFile is the name of the config file read by Config.Load.
const ConfigFile = "archivebox.yaml"

// Config holds the settings imports and exports fall back to when no
// option overrides them.
type Config struct {
	// TempDir is where exports to files are staged and where imports
	// of non seekable ZIP sources are spooled. Empty means the
	// directory of the target file for staging, and memory for
	// spooling.
	TempDir string `yaml:"TempDir"`

	// PipeBufferSize bounds how far a streamed export may run ahead of
	// its reader, in bytes.
	PipeBufferSize int `yaml:"PipeBufferSize"`

	// CompressionLevel is passed to compressing formats. 0 selects each
	// format's default, otherwise 1 (fastest) to 9 (smallest).
	CompressionLevel int `yaml:"CompressionLevel"`

	// MaxEntrySize limits the size of a single imported file, in bytes.
	// 0 means no limit.
	MaxEntrySize int64 `yaml:"MaxEntrySize"`
}

// DefaultConfig returns the config used when none is given.
func DefaultConfig() Config {
	return Config{PipeBufferSize: orio.DefaultPipeSize}
}

func (c Config) withDefaults() Config {
	if c.PipeBufferSize <= 0 {
		c.PipeBufferSize = orio.DefaultPipeSize
	}
	return c
}

// Load reads the config from ConfigFile. Fields absent from the file
// keep their current values.
func (c *Config) Load() error {
	return cfg.Load(ConfigFile, c)
}

// LoadConfig returns the default config overlaid with ConfigFile, if
// there is one.
func LoadConfig() (Config, error) {
	c := DefaultConfig()
	if err := c.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}
	return c.withDefaults(), nil
}
