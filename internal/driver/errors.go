package driver

import (
	"errors"
	"fmt"
)

// ErrSessionStartup matches every *SessionStartupError.
var ErrSessionStartup = errors.New("browser session startup failed")

// SessionStartupError reports that no browser could be started. It is an
// environment fault and is never retried.
type SessionStartupError struct {
	Target  string
	Browser Kind
	Err     error
}

func (e *SessionStartupError) Error() string {
	return fmt.Sprintf("could not start %s session on %s: %v", e.Browser, e.Target, e.Err)
}

func (e *SessionStartupError) Unwrap() error {
	return e.Err
}

func (e *SessionStartupError) Is(target error) bool {
	return target == ErrSessionStartup
}
