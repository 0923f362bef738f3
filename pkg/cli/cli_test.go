package cli_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gotest.tools/v3/assert"

	ocli "github.com/getoutreach/archivebox/pkg/cli"
	"github.com/getoutreach/archivebox/pkg/log"
)

func newApp(action cli.ActionFunc) *cli.App {
	return &cli.App{
		Name:   "testapp",
		Writer: &bytes.Buffer{},
		Action: action,
	}
}

func TestRunSuccess(t *testing.T) {
	var logs bytes.Buffer
	code := ocli.Run(context.Background(), newApp(func(c *cli.Context) error {
		log.Info(c.Context, "hello")
		return nil
	}), []string{"testapp"}, &logs)

	assert.Equal(t, code, 0)
	assert.Assert(t, bytes.Contains(logs.Bytes(), []byte(`"app.name":"testapp"`)), logs.String())
}

func TestRunFailure(t *testing.T) {
	var logs bytes.Buffer
	code := ocli.Run(context.Background(), newApp(func(*cli.Context) error {
		return errors.New("boom")
	}), []string{"testapp"}, &logs)

	assert.Equal(t, code, 1)
	assert.Assert(t, bytes.Contains(logs.Bytes(), []byte("boom")), logs.String())
}

func TestRunExitCode(t *testing.T) {
	code := ocli.Run(context.Background(), newApp(func(*cli.Context) error {
		return cli.Exit("bad usage", 3)
	}), []string{"testapp"}, &bytes.Buffer{})

	assert.Equal(t, code, 3)
}

func TestRunPanic(t *testing.T) {
	code := ocli.Run(context.Background(), newApp(func(*cli.Context) error {
		panic("oops")
	}), []string{"testapp"}, &bytes.Buffer{})

	assert.Equal(t, code, 2)
}

func TestRunDebugFlag(t *testing.T) {
	defer log.SetLevel("info")

	var logs bytes.Buffer
	code := ocli.Run(context.Background(), newApp(func(c *cli.Context) error {
		log.Debug(c.Context, "visible")
		return nil
	}), []string{"testapp", "--debug"}, &logs)

	assert.Equal(t, code, 0)
	assert.Assert(t, bytes.Contains(logs.Bytes(), []byte("visible")), logs.String())
}

func TestRunRestoresExiter(t *testing.T) {
	called := 0
	prev := cli.OsExiter
	cli.OsExiter = func(int) { called++ }
	defer func() { cli.OsExiter = prev }()

	code := ocli.Run(context.Background(), newApp(func(*cli.Context) error {
		return cli.Exit("bad usage", 3)
	}), []string{"testapp"}, &bytes.Buffer{})
	assert.Equal(t, code, 3)
	assert.Equal(t, called, 0)

	cli.OsExiter(1)
	assert.Equal(t, called, 1)
}
