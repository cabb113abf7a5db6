package bot

import "fmt"

// LoginError represents a failed authentication step. Fatal to the run.
type LoginError struct {
	Reason string
	Cause  error
}

func (e *LoginError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("login failed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("login failed: %s", e.Reason)
}

func (e *LoginError) Unwrap() error {
	return e.Cause
}

// ApplyError represents a per-listing application failure. Non-fatal at run
// level; the listing is skipped and does not consume cap budget.
type ApplyError struct {
	Reason string
	Cause  error
}

func (e *ApplyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("apply failed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("apply failed: %s", e.Reason)
}

func (e *ApplyError) Unwrap() error {
	return e.Cause
}
