// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: YAML config loading.

// Package cfg manages config for archivebox components.
//
// Every component that needs config should define a strongly typed
// struct for it
//
// Example
//
//	type ExportConfig struct {
//	   TempDir        string `yaml:"TempDir"`
//	   PipeBufferSize int    `yaml:"PipeBufferSize"`
//	}
//
//	func (c *ExportConfig) Load() error {
//	    return cfg.Load("export.yaml", c)
//	}
//
// All config structs should typically implement their own `Load()`
// method so that the config location is specified in one spot.
//
// # Config directory
//
// Config files are looked up in /etc/archivebox/ unless the
// ARCHIVEBOX_CONFIG_DIR environment variable names another directory.
// Tests replace the lookup entirely with SetDefaultReader.
package cfg

import (
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v2"
)

// DirEnvVar names the environment variable overriding the config directory.
const DirEnvVar = "ARCHIVEBOX_CONFIG_DIR"

// Dir returns the directory config files are read from.
func Dir() string {
	if dir, err := EnvString(DirEnvVar); err == nil && dir != "" {
		return dir
	}

	dir := "/etc/archivebox"
	if runtime.GOOS == "windows" {
		dir = "C:" + filepath.FromSlash(dir)
	}
	return dir
}

// the default reader looks for config files in Dir()
// nolint:gochecknoglobals
var defaultReader = Reader(func(fileName string) ([]byte, error) {
	return os.ReadFile(filepath.Join(Dir(), fileName))
})

// Reader reads the config from the provided file
type Reader func(fileName string) ([]byte, error)

// Load reads the config.
//
// Usage:
//
//	var appConfig MyConfig
//	err := cfg.Load("myapp.yaml", &appConfig)
//
// This parses the config using YAML. If a config has special needs,
// it can implement its own UnmarshalYAML.
func (r Reader) Load(fileName string, ptr interface{}) error {
	data, err := r(fileName)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, ptr)
}

// Load uses the default config reader to load config
func Load(fileName string, ptr interface{}) error {
	return defaultReader.Load(fileName, ptr)
}

// SetDefaultReader sets the default reader.  Only meant for tests and
// dev environment overrides
func SetDefaultReader(f Reader) {
	defaultReader = f
}

// DefaultReader returns the current default reader. Only meant for
// tests and dev environment overrides
func DefaultReader() Reader {
	return defaultReader
}

// FakeConfig makes Load return data marshaled from value for fileName,
// delegating every other file to the previous reader. The returned
// function restores the previous reader.
func FakeConfig(fileName string, value interface{}) (func(), error) {
	data, err := yaml.Marshal(value)
	if err != nil {
		return nil, err
	}

	old := DefaultReader()
	SetDefaultReader(func(name string) ([]byte, error) {
		if name == fileName {
			return data, nil
		}
		return old(name)
	})
	return func() { SetDefaultReader(old) }, nil
}
