package archive_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/getoutreach/archivebox/pkg/archive"
	"github.com/getoutreach/archivebox/pkg/asset"
	"github.com/getoutreach/archivebox/pkg/log/logtest"
	"github.com/getoutreach/archivebox/pkg/orerr"
	"github.com/getoutreach/archivebox/pkg/vpath"
)

// waitBound is how long a producer may take to notice its reader is
// gone.
const waitBound = 5 * time.Second

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitBound)
	t.Cleanup(cancel)
	return ctx
}

// big returns an archive whose export is much larger than the pipe.
func big(t *testing.T) *archive.Archive {
	t.Helper()
	a := archive.New("big.jar")
	for i := 0; i < 64; i++ {
		p, err := vpath.Join(vpath.Must("/data"), strings.Repeat("f", i+1))
		assert.NilError(t, err)
		assert.NilError(t, a.AddBytes(p, bytes.Repeat([]byte{byte(i)}, 64*1024)))
	}
	return a
}

func TestStreamMatchesExportTo(t *testing.T) {
	ctx := context.Background()
	src := sample(t)

	for _, f := range []archive.Format{archive.Tar, archive.TarGz, archive.TarBz2} {
		v, err := src.As(f)
		assert.NilError(t, err)

		s := v.ExportAsStream(ctx, archive.WithPipeBufferSize(512))
		streamed, err := io.ReadAll(s)
		assert.NilError(t, err)
		assert.NilError(t, s.Close())
		assert.NilError(t, s.Wait(waitCtx(t)))
		assert.Equal(t, s.State(), archive.PumpCompleted)

		dst := archive.New("copy")
		dv, _ := dst.As(f)
		assert.NilError(t, dv.ImportFrom(ctx, bytes.NewReader(streamed)))
		assert.DeepEqual(t, snapshot(t, dst), snapshot(t, src))
	}
}

func TestStreamReaderAbandonsBeforeReading(t *testing.T) {
	v, err := big(t).As(archive.Tar)
	assert.NilError(t, err)

	s := v.ExportAsStream(context.Background(), archive.WithPipeBufferSize(1024))
	assert.NilError(t, s.Close())

	err = s.Wait(waitCtx(t))
	assert.Assert(t, !errors.Is(err, context.DeadlineExceeded), "producer did not exit")
	assert.Assert(t, errors.Is(err, archive.ErrArchiveExport))
	assert.Assert(t, errors.Is(err, archive.ErrStreamClosed))

	var shutdown *orerr.ShutdownError
	assert.Assert(t, errors.As(err, &shutdown))
	assert.Equal(t, s.State(), archive.PumpFailed)

	_, err = s.Read(make([]byte, 1))
	assert.Assert(t, err != nil)
}

func TestStreamReaderAbandonsMidway(t *testing.T) {
	v, err := big(t).As(archive.Tar)
	assert.NilError(t, err)

	s := v.ExportAsStream(context.Background(), archive.WithPipeBufferSize(4096))
	_, err = io.CopyN(io.Discard, s, 10_000)
	assert.NilError(t, err)
	assert.Equal(t, s.State(), archive.PumpProducing)
	assert.NilError(t, s.Close())

	select {
	case <-s.Done():
	case <-time.After(waitBound):
		t.Fatal("producer did not exit after the reader closed")
	}
	assert.Equal(t, s.State(), archive.PumpFailed)
}

func TestStreamAbandonLogsNoWarnings(t *testing.T) {
	logs := logtest.NewLogRecorder(t)
	defer logs.Close()

	for _, f := range []archive.Format{archive.Tar, archive.TarGz, archive.Zip} {
		v, err := big(t).As(f)
		assert.NilError(t, err)

		s := v.ExportAsStream(context.Background(), archive.WithPipeBufferSize(1024))
		_, err = io.CopyN(io.Discard, s, 100)
		assert.NilError(t, err)
		assert.NilError(t, s.Close())
		assert.Assert(t, errors.Is(s.Wait(waitCtx(t)), archive.ErrStreamClosed))
	}

	for _, e := range logs.Entries() {
		assert.Assert(t, e["level"] != "warning" && e["level"] != "error", "unexpected log: %v", e)
	}
}

// brokenAsset claims a size but fails part way through its content.
type brokenAsset struct{}

func (brokenAsset) Size() (int64, error) {
	return 1 << 20, nil
}

func (brokenAsset) Open() (io.ReadCloser, error) {
	return io.NopCloser(io.MultiReader(
		bytes.NewReader(make([]byte, 100_000)),
		iotestErrReader{errors.New("backing store went away")},
	)), nil
}

type iotestErrReader struct {
	err error
}

func (e iotestErrReader) Read([]byte) (int, error) {
	return 0, e.err
}

var _ asset.Sized = brokenAsset{}

func TestStreamProducerFailureReachesReader(t *testing.T) {
	a := archive.New("broken.jar")
	assert.NilError(t, a.AddString(vpath.Must("/a.txt"), "fine"))
	assert.NilError(t, a.Add(vpath.Must("/b.bin"), brokenAsset{}))

	for _, f := range []archive.Format{archive.Zip, archive.Tar} {
		v, _ := a.As(f)
		s := v.ExportAsStream(context.Background(), archive.WithPipeBufferSize(1024))

		_, err := io.ReadAll(s)
		assert.Assert(t, errors.Is(err, archive.ErrArchiveExport), string(f))
		assert.ErrorContains(t, err, "backing store went away")

		var exportErr *archive.ExportError
		assert.Assert(t, errors.As(err, &exportErr))
		assert.Equal(t, exportErr.Path, "/b.bin")

		assert.ErrorContains(t, s.Wait(waitCtx(t)), "backing store went away")
		assert.Equal(t, s.State(), archive.PumpFailed)
		assert.NilError(t, s.Close())
	}
}

func TestStreamInvalidOptionReachesReader(t *testing.T) {
	v, _ := sample(t).As(archive.Zip)
	s := v.ExportAsStream(context.Background(), archive.WithCompressionLevel(42))

	_, err := io.ReadAll(s)
	assert.Assert(t, errors.Is(err, archive.ErrIllegalArgument))
	assert.Equal(t, s.State(), archive.PumpFailed)
}

func TestStreamContextCanceled(t *testing.T) {
	v, _ := big(t).As(archive.Tar)
	ctx, cancel := context.WithCancel(context.Background())

	s := v.ExportAsStream(ctx, archive.WithPipeBufferSize(1024))
	cancel()

	_, err := io.ReadAll(s)
	assert.Assert(t, errors.Is(err, archive.ErrArchiveExport))
	assert.Assert(t, errors.Is(err, context.Canceled))
	assert.Assert(t, s.ID() != "")
}

func TestPumpStateString(t *testing.T) {
	assert.Equal(t, archive.PumpIdle.String(), "idle")
	assert.Equal(t, archive.PumpProducing.String(), "producing")
	assert.Equal(t, archive.PumpCompleted.String(), "completed")
	assert.Equal(t, archive.PumpFailed.String(), "failed")
}
