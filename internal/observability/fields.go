package observability

import (
	"time"

	"go.uber.org/zap"
)

// Field constructors re-exported so call sites outside the HTTP layer don't
// import zap directly.

// String creates a string log field.
func String(key, value string) zap.Field { return zap.String(key, value) }

// Int creates an int log field.
func Int(key string, value int) zap.Field { return zap.Int(key, value) }

// Bool creates a bool log field.
func Bool(key string, value bool) zap.Field { return zap.Bool(key, value) }

// Float64 creates a float64 log field.
func Float64(key string, value float64) zap.Field { return zap.Float64(key, value) }

// Duration creates a duration log field.
func Duration(key string, value time.Duration) zap.Field { return zap.Duration(key, value) }

// Time creates a time log field.
func Time(key string, value time.Time) zap.Field { return zap.Time(key, value) }

// Error creates an error log field.
func Error(err error) zap.Field { return zap.Error(err) }
