package async_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/getoutreach/archivebox/pkg/async"
	"github.com/getoutreach/archivebox/pkg/log/logtest"
	"github.com/getoutreach/archivebox/pkg/orerr"
)

type runWithCloser struct {
	isclosed bool
}

func (r *runWithCloser) Run(c context.Context) error {
	for {
		time.Sleep(10 * time.Millisecond)
		if c.Err() != nil {
			return c.Err()
		}
	}
}

func (r *runWithCloser) Close(c context.Context) error {
	r.isclosed = true
	return nil
}

func TestRunGroupErrorPropagation(t *testing.T) {
	ctx := context.Background()
	r1 := async.Func(func(c context.Context) error {
		return fmt.Errorf("oh no")
	})
	r2 := runWithCloser{}
	aggr := async.RunGroup([]async.Runner{&r1, &r2})
	err := aggr.Run(ctx)
	assert.ErrorContains(t, err, "oh no")
	assert.Equal(t, r2.isclosed, true, "Closed the infinite loop correctly")
}

func TestRunGroupSuccess(t *testing.T) {
	var count int32
	rg := make([]async.Runner, 0, 5)
	for i := 0; i < 5; i++ {
		rg = append(rg, async.Func(func(context.Context) error {
			atomic.AddInt32(&count, 1)
			return nil
		}))
	}
	assert.NilError(t, async.RunGroup(rg).Run(context.Background()))
	assert.Equal(t, atomic.LoadInt32(&count), int32(5))
}

func TestRunDeadlinePropagation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var hasDeadline atomic.Bool
	tasks := async.NewTasks("deadline")
	tasks.Run(ctx, async.Func(func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		hasDeadline.Store(ok)
		return nil
	}))
	tasks.Wait()
	assert.Assert(t, hasDeadline.Load())
}

func TestRunLogsFailures(t *testing.T) {
	logs := logtest.NewLogRecorder(t)
	defer logs.Close()

	tasks := async.NewTasks("producer")
	tasks.Run(context.Background(), async.Func(func(context.Context) error {
		return fmt.Errorf("failed")
	}))
	tasks.Run(context.Background(), async.Func(func(context.Context) error {
		return orerr.ShutdownError{}
	}))
	tasks.Run(context.Background(), async.Func(func(context.Context) error {
		return context.Canceled
	}))
	tasks.Wait()

	entries := logs.Entries()
	assert.Equal(t, len(entries), 1)
	assert.Equal(t, entries[0]["message"], "producer")
	assert.Equal(t, entries[0]["task"], "producer")
	assert.Equal(t, entries[0]["error.error"], "failed")
}
