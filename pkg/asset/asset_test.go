package asset_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/getoutreach/archivebox/pkg/asset"
)

func TestAssetsAreReopenable(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, "f.txt")
	assert.NilError(t, os.WriteFile(fp, []byte("file"), 0o600))

	tests := []struct {
		name string
		a    asset.Asset
		want string
	}{
		{name: "bytes", a: asset.Bytes("hi"), want: "hi"},
		{name: "string", a: asset.String("yo"), want: "yo"},
		{name: "file", a: asset.File(fp), want: "file"},
		{name: "empty", a: asset.Empty(), want: ""},
		{name: "func", a: asset.Func(func() (io.ReadCloser, error) {
			return asset.String("fn").Open()
		}), want: "fn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 2; i++ {
				got, err := asset.ReadAll(tt.a)
				assert.NilError(t, err)
				assert.Equal(t, string(got), tt.want)
			}

			n, err := asset.SizeOf(tt.a)
			assert.NilError(t, err)
			assert.Equal(t, n, int64(len(tt.want)))
		})
	}
}

func TestMissingFileFails(t *testing.T) {
	_, err := asset.ReadAll(asset.File(filepath.Join(t.TempDir(), "missing")))
	assert.ErrorContains(t, err, "failed to open asset file")
}
