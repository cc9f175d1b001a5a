package browse

import (
	"errors"
	"fmt"
)

// ErrSessionFault indicates the browsing session itself is unusable:
// the first load never succeeded or the driver was used after Close.
// Session faults abort the whole catalog fetch.
type ErrSessionFault struct {
	Err error
}

func (e ErrSessionFault) Error() string {
	return fmt.Errorf("session fault: %w", e.Err).Error()
}

func (e ErrSessionFault) Unwrap() error {
	return e.Err
}

// ErrNavigation indicates a single page load or click failed. Callers
// treat it as end of pagination and keep the partial result.
type ErrNavigation struct {
	URL string
	Err error
}

func (e ErrNavigation) Error() string {
	return fmt.Errorf("navigate %s: %w", e.URL, e.Err).Error()
}

func (e ErrNavigation) Unwrap() error {
	return e.Err
}

// ErrTimeout indicates a wait expired before its condition held.
type ErrTimeout struct {
	Op  string
	Err error
}

func (e ErrTimeout) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("timeout: %s", e.Op)
	}
	return fmt.Errorf("timeout: %s: %w", e.Op, e.Err).Error()
}

func (e ErrTimeout) Unwrap() error {
	return e.Err
}

// IsSessionFault reports whether err carries a session-level fault.
func IsSessionFault(err error) bool {
	var sf ErrSessionFault
	return errors.As(err, &sf)
}
