package orerr_test

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/pkg/errors"
	"gotest.tools/v3/assert"

	"github.com/getoutreach/archivebox/pkg/log"
	"github.com/getoutreach/archivebox/pkg/orerr"
)

func ExampleNew() {
	origErr := errors.New("something went wrong")
	info := log.F{"hello": "world"}
	err := orerr.New(origErr, orerr.WithInfo(info))

	formatted := log.F{}
	//nolint:errorlint // Why: test
	err.(log.Marshaler).MarshalLog(formatted.Set)
	fmt.Println("Err", err, formatted)

	// Output: Err something went wrong map[hello:world]
}

func ExampleIsOneOf() {
	errList := []error{io.EOF, context.Canceled, context.DeadlineExceeded}

	if orerr.IsOneOf(io.EOF, errList...) {
		fmt.Println("io.EOF is part of the error list")
	}

	// Output:
	// io.EOF is part of the error list
}

func TestNilNew(t *testing.T) {
	assert.NilError(t, orerr.New(nil))
}

func TestWithInfo(t *testing.T) {
	origErr := errors.New("something went wrong")
	info1 := log.F{"hello": "goodbye"}
	info2 := log.F{"foo": "bar"}

	err := orerr.Info(origErr, info1, info2)
	assert.Equal(t, origErr.Error(), err.Error())
	assert.Equal(t, origErr, errors.Unwrap(err))

	actual := log.F{}
	//nolint:errorlint // Why: test
	err.(log.Marshaler).MarshalLog(actual.Set)
	expected := log.F{"hello": "goodbye", "foo": "bar"}
	assert.DeepEqual(t, expected, actual)
}

func TestCancelWithError(t *testing.T) {
	err := errors.New("something went wrong")
	ctx, cancel := orerr.CancelWithError(context.Background())
	cancel(err)
	<-ctx.Done()
	assert.Equal(t, ctx.Err(), err)

	ctx, cancel = orerr.CancelWithError(context.Background())
	cancel(nil)
	<-ctx.Done()
	assert.Assert(t, errors.Is(ctx.Err(), context.Canceled))
}

func TestShutdownError(t *testing.T) {
	err := errors.New("reader closed")
	shutdownErr := &orerr.ShutdownError{Err: err}
	assert.Assert(t, errors.Is(shutdownErr, err))
	assert.Equal(t, shutdownErr.Error(), "shutdown: reader closed")
	assert.Equal(t, orerr.ShutdownError{}.Error(), "shutdown")
}

func TestLimitExceededError(t *testing.T) {
	err := errors.New("something went wrong")
	limitErr := &orerr.LimitExceededError{Kind: "entry size", Limit: 10, Err: err}
	assert.Assert(t, errors.Is(limitErr, err))
	assert.Equal(t, limitErr.Error(), "entry size limit exceeded")

	fields := log.F{}
	limitErr.MarshalLog(fields.Set)
	assert.DeepEqual(t, fields, log.F{"limit.kind": "entry size", "limit.value": int64(10)})
}
