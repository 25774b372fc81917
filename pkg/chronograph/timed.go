package chronograph

import (
	"reflect"
	"runtime"
	"strings"
)

// Timed wraps fn so every invocation is recorded as a split on the named
// Chronograph from the process-wide registry. An empty name derives the
// Chronograph name from the function's own identifier. The stop is
// deferred, so a panic inside fn still closes the split before
// propagating.
func Timed(name string, fn func()) func() {
	return func() {
		c := resolve(name, fn)
		c.Start("")
		defer c.Stop()
		fn()
	}
}

// TimedErr is Timed for functions that return an error. The wrapped
// function's error passes through unchanged.
func TimedErr(name string, fn func() error) func() error {
	return func() error {
		c := resolve(name, fn)
		c.Start("")
		defer c.Stop()
		return fn()
	}
}

func resolve(name string, fn interface{}) *Chronograph {
	if name == "" {
		name = funcName(fn)
	}
	return Default().GetOrCreate(name, Options{})
}

// funcName returns the bare identifier of fn, without package path.
func funcName(fn interface{}) string {
	pc := reflect.ValueOf(fn).Pointer()
	full := runtime.FuncForPC(pc).Name()
	if i := strings.LastIndex(full, "."); i >= 0 {
		full = full[i+1:]
	}
	// Method values carry a -fm suffix.
	return strings.TrimSuffix(full, "-fm")
}
