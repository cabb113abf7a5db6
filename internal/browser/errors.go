package browser

import "fmt"

// InitError represents a failure to start the browser session.
type InitError struct {
	Message string
	Cause   error
}

func (e *InitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("browser init failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("browser init failed: %s", e.Message)
}

func (e *InitError) Unwrap() error {
	return e.Cause
}
