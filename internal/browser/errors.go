package browser

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTimeout matches every *TimeoutError.
	ErrTimeout = errors.New("wait timed out")
	// ErrNoElement is returned by actions on a locator that matches nothing.
	ErrNoElement = errors.New("no element matches locator")
)

// TimeoutError reports a wait whose condition never held within its budget.
type TimeoutError struct {
	Condition string
	Timeout   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for %s", e.Timeout, e.Condition)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// IsTimeout reports whether err is, or wraps, a wait timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
