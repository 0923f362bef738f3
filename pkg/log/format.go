// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Selects how log entries are rendered for an output.

package log

import (
	"bytes"
	"io"
	"maps"
	"os"
	"slices"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// formatterFor returns the formatter used for w. Terminals get the
// charm text format, everything else gets one JSON object per line.
func formatterFor(w io.Writer) logrus.Formatter {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return newTextFormatter(termenv.NewOutput(f).EnvColorProfile())
	}
	return newJSONFormatter()
}

func newJSONFormatter() logrus.Formatter {
	return &logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyMsg:  "message",
			logrus.FieldKeyTime: "@timestamp",
		},
	}
}

// textFormatter renders entries through a charm logger:
//
//	14:03:38 INFO imported archive archive.entries=3 archive.format=zip
type textFormatter struct {
	mu  sync.Mutex
	buf bytes.Buffer
	l   *charmlog.Logger
}

func newTextFormatter(profile termenv.Profile) *textFormatter {
	f := &textFormatter{}
	f.l = charmlog.NewWithOptions(&f.buf, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           charmlog.DebugLevel,
	})
	f.l.SetColorProfile(profile)
	return f
}

// Format implements logrus.Formatter.
func (f *textFormatter) Format(e *logrus.Entry) ([]byte, error) {
	keyvals := make([]interface{}, 0, 2*len(e.Data))
	for _, k := range slices.Sorted(maps.Keys(e.Data)) {
		keyvals = append(keyvals, k, e.Data[k])
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.buf.Reset()
	f.l.Log(charmLevel(e.Level), e.Message, keyvals...)
	return bytes.Clone(f.buf.Bytes()), nil
}

func charmLevel(lvl logrus.Level) charmlog.Level {
	switch lvl {
	case logrus.PanicLevel, logrus.FatalLevel:
		return charmlog.FatalLevel
	case logrus.ErrorLevel:
		return charmlog.ErrorLevel
	case logrus.WarnLevel:
		return charmlog.WarnLevel
	case logrus.InfoLevel:
		return charmlog.InfoLevel
	default:
		return charmlog.DebugLevel
	}
}
