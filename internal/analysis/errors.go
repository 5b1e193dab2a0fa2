package analysis

import "fmt"

// Error represents a failed analysis run.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Code returns the machine-readable error code.
func (e *Error) Code() string { return "analysis_failed" }
