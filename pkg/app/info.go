// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Static information about the running binary.

// Package app has the static app info
package app

import (
	"runtime/debug"
)

// Version needs to be set at build time using -ldflags "-X github.com/getoutreach/archivebox/pkg/app.Version=something"
// nolint:gochecknoglobals
var Version = "development"

// nolint:gochecknoglobals
var appName = "unknown"

// Info returns the static app info
//
// This struct is used mainly to provide tags to append to logs.
func Info() *Data {
	mainModule := ""
	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		mainModule = buildInfo.Main.Path
	}

	return &Data{
		Name:       appName,
		Version:    Version,
		MainModule: mainModule,
	}
}

// SetName sets the app name
//
// Should only be called from tests and app initialization
func SetName(name string) {
	appName = name
}

// Data provides the global app info
type Data struct {
	Name    string
	Version string

	MainModule string
}

// MarshalLog implements log.Marshaler.
func (d *Data) MarshalLog(addField func(field string, value interface{})) {
	addField("app.name", d.Name)
	addField("app.version", d.Version)
}
