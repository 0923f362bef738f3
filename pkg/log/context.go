// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Attaches log fields to a context.

package log

import "context"

// contextKey is the context.Context key type for stored fields
type contextKey int

const fieldsKey contextKey = iota

// NewContext returns a context carrying args. Every log written with
// the returned context includes the fields. MarshalLog is invoked
// immediately on all args so later mutation of the values has no
// effect on the logs.
func NewContext(ctx context.Context, args ...Marshaler) context.Context {
	captured := F{}
	if inherited := contextFields(ctx); inherited != nil {
		inherited.MarshalLog(captured.Set)
	}
	Many(args).MarshalLog(captured.Set)
	return context.WithValue(ctx, fieldsKey, captured)
}

func contextFields(ctx context.Context) F {
	if f, ok := ctx.Value(fieldsKey).(F); ok {
		return f
	}
	return nil
}
