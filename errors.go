package xq

import (
	"encoding/json"
	"fmt"
)

// CompileError reports a query that failed to parse or compile.
type CompileError struct {
	Query string
	Err   error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid query %q: %s", e.Query, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// HaltError is produced by the `halt` and `halt_error` builtins. Code is
// the requested exit status; Value is the halt_error payload (nil for a
// plain halt).
type HaltError struct {
	Value any
	Code  int
}

func (e *HaltError) Error() string {
	switch v := e.Value.(type) {
	case nil:
		return fmt.Sprintf("halted with exit code %d", e.Code)
	case string:
		return v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
