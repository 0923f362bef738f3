// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file contains the helper utilities for marshaling log fields.

package log

// Marshaler is the interface to be implemented by items that can be logged.
//
// The MarshalLog function will be called by the logger with the
// addField function provided. The implementation an add logging
// fields using this function. The field value can itself be another
// Marshaler instance, in which case the field names are concatenated
// with dot to indicate nesting.
type Marshaler interface {
	MarshalLog(addField func(key string, v interface{}))
}

// marshal checks if the value provided implements Marshaler. If it
// does, it recursively calls MarshalLog building up the prefixes
// (combining them with ".").
func marshal(prefix string, v interface{}, setField func(key string, value interface{})) {
	m, ok := v.(Marshaler)
	if !ok {
		if prefix != "" {
			setField(prefix, v)
		}
		return
	}

	m.MarshalLog(func(inner string, val interface{}) {
		if prefix == "" {
			marshal(inner, val, setField)
		} else {
			marshal(prefix+"."+inner, val, setField)
		}
	})
}

// F is a map of fields used for logging:
//
//	log.Info(ctx, "request started", log.F{"start_time": time.Now()})
//
// When logging errors, use events.NewErrorInfo:
//
//	log.Error(ctx, "some failure", events.NewErrorInfo(err))
type F map[string]interface{}

// Set writes the field value into F. If the value is a log.Marshaler,
// it recursively marshals that value into F.
func (f F) Set(field string, value interface{}) {
	marshal(field, value, func(key string, value interface{}) {
		if err, ok := value.(error); ok {
			value = err.Error()
		}
		f[key] = value
	})
}

// MarshalLog implements the Marshaler interface for F
func (f F) MarshalLog(addField func(field string, value interface{})) {
	for k, v := range f {
		addField(k, v)
	}
}

// Many aggregates marshaling of many items
type Many []Marshaler

// MarshalLog calls MarshalLog on all the non-nil elements
func (m Many) MarshalLog(addField func(key string, v interface{})) {
	for _, item := range m {
		if item != nil {
			item.MarshalLog(addField)
		}
	}
}
