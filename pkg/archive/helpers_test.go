package archive_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/getoutreach/archivebox/pkg/archive"
	"github.com/getoutreach/archivebox/pkg/asset"
	"github.com/getoutreach/archivebox/pkg/filter"
	"github.com/getoutreach/archivebox/pkg/vpath"
)

const dirMarker = "<dir>"

// snapshot maps every path of a to its content, or dirMarker for
// directories.
func snapshot(t *testing.T, a *archive.Archive) map[string]string {
	t.Helper()

	out := map[string]string{}
	for p, n := range a.Content(filter.All()) {
		if n.IsDir() {
			out[p.String()] = dirMarker
			continue
		}
		b, err := asset.ReadAll(n.Asset())
		assert.NilError(t, err)
		out[p.String()] = string(b)
	}
	return out
}

// sample builds an archive with nested directories, an empty
// directory, an empty file and a binary file.
func sample(t *testing.T) *archive.Archive {
	t.Helper()

	binary := make([]byte, 300*1024)
	for i := range binary {
		binary[i] = byte(i * 7)
	}

	a := archive.New("sample.jar")
	assert.NilError(t, a.AddString(vpath.Must("/x.txt"), "hi"))
	assert.NilError(t, a.AddString(vpath.Must("/dir/y.txt"), "yo"))
	assert.NilError(t, a.AddString(vpath.Must("/dir/sub/z.txt"), "deep"))
	assert.NilError(t, a.AddDirectory(vpath.Must("/empty")))
	assert.NilError(t, a.Add(vpath.Must("/META-INF/MANIFEST.MF"), asset.Empty()))
	assert.NilError(t, a.AddBytes(vpath.Must("/lib/blob.bin"), binary))
	return a
}
