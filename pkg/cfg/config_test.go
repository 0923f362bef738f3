package cfg_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/getoutreach/archivebox/pkg/cfg"
)

type exportConfig struct {
	TempDir        string `yaml:"TempDir"`
	PipeBufferSize int    `yaml:"PipeBufferSize"`
}

func Example() {
	expected := exportConfig{TempDir: "/tmp/spool", PipeBufferSize: 4096}

	restore, err := cfg.FakeConfig("export.yaml", expected)
	if err != nil {
		fmt.Println("Unexpected error", err)
		return
	}
	defer restore()

	var c exportConfig
	if err := cfg.Load("export.yaml", &c); err != nil {
		fmt.Println("Unexpected error", err)
	}

	fmt.Println(c == expected, c.TempDir)

	// Output:
	// true /tmp/spool
}

func TestLoadFromConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(cfg.DirEnvVar, dir)
	err := os.WriteFile(filepath.Join(dir, "export.yaml"), []byte("TempDir: /var/spool\nPipeBufferSize: 128\n"), 0o600)
	assert.NilError(t, err)

	var c exportConfig
	assert.NilError(t, cfg.Load("export.yaml", &c))
	assert.DeepEqual(t, c, exportConfig{TempDir: "/var/spool", PipeBufferSize: 128})
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv(cfg.DirEnvVar, t.TempDir())

	var c exportConfig
	err := cfg.Load("missing.yaml", &c)
	assert.Assert(t, os.IsNotExist(err))
}
