// Package jsutil provides safe, consistent JS<->Go value conversion for Goja runtime.
package jsutil

import (
	"github.com/dop251/goja"

	"github.com/hlop3z/typesmith/internal/tserr"
)

// ExportString extracts a Go string from a Goja value.
// Returns false for nil, undefined, null, or non-string values.
func ExportString(v goja.Value) (string, bool) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return "", false
	}
	s, ok := v.Export().(string)
	return s, ok
}

// ToGoValue converts a Goja value to a Go value.
// Returns nil for undefined/null values.
func ToGoValue(v goja.Value) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	return v.Export()
}

// TypeName reports the JS-visible type of a value, for error messages.
func TypeName(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	if obj, ok := v.(*goja.Object); ok {
		return obj.ClassName()
	}
	return v.ExportType().String()
}

// Call safely calls a Goja function with error handling.
func Call(fn goja.Callable, this goja.Value, args ...goja.Value) (goja.Value, error) {
	if fn == nil {
		return nil, tserr.New(tserr.ErrJSExecution, "cannot call nil function")
	}
	result, err := fn(this, args...)
	if err != nil {
		return nil, WrapJSError(err, tserr.ErrJSExecution)
	}
	return result, nil
}

// WrapJSError wraps a JavaScript error with the specified error code.
// Returns nil if the input error is nil.
func WrapJSError(err error, code tserr.Code) *tserr.Error {
	if err == nil {
		return nil
	}
	// Goja exceptions carry the JS-side message and stack
	if exception, ok := err.(*goja.Exception); ok {
		return tserr.Wrap(code, err, exception.String())
	}
	return tserr.Wrap(code, err, err.Error())
}
