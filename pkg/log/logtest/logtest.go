// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Captures log entries for assertions in tests.

// Package logtest provides the ability to test logs
//
// Usage:
//
//	func MyTestFunc(t *testing.T) {
//	    logs := logtest.NewLogRecorder(t)
//	    defer logs.Close()
//	    .....
//	    entries := logs.Entries()
//	}
package logtest

import (
	"bytes"
	"encoding/json"
	"io"
	"sync"
	"testing"

	"github.com/getoutreach/archivebox/pkg/log"
)

// NewLogRecorder starts a new log recorder.
//
// Logs must be stopped by calling Close() on the recorder
func NewLogRecorder(t *testing.T) *LogRecorder {
	r := &LogRecorder{T: t, oldOutput: log.Output()}
	log.SetOutput(r)
	return r
}

// LogRecorder holds the state
type LogRecorder struct {
	*testing.T
	oldOutput io.Writer
	entries   []log.F
	sync.Mutex
}

// Write parses one JSON log line per call.
func (l *LogRecorder) Write(b []byte) (int, error) {
	var entry log.F
	if err := json.Unmarshal(bytes.TrimSpace(b), &entry); err != nil {
		l.Errorf("invalid log entry %q: %v", string(b), err)
		return len(b), nil
	}

	l.Lock()
	defer l.Unlock()
	l.entries = append(l.entries, entry)
	return len(b), nil
}

// Close restores the previous log output.
func (l *LogRecorder) Close() {
	log.SetOutput(l.oldOutput)
}

// Entries returns the log entries.
func (l *LogRecorder) Entries() []log.F {
	l.Lock()
	defer l.Unlock()
	return l.entries[:len(l.entries):len(l.entries)]
}

// Messages returns the message of every recorded entry, in order.
func (l *LogRecorder) Messages() []string {
	entries := l.Entries()
	msgs := make([]string, 0, len(entries))
	for _, e := range entries {
		if s, ok := e["message"].(string); ok {
			msgs = append(msgs, s)
		}
	}
	return msgs
}

// Map uses the given arguments `MarshalLog` function to serialize it
// into a map, which it returns.
//
// The serialization is similar to the one performed by logs.  Any nesting is
// flattened by representing it as dot-separated key prefixes in a flat map.
func Map(m log.Marshaler) map[string]interface{} {
	ret := log.F{}
	m.MarshalLog(ret.Set)
	return ret
}
