package browser

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Condition is evaluated repeatedly by Wait.Until until it holds.
type Condition struct {
	Description string
	Check       func(d Driver) (bool, error)
}

// VisibilityOf holds once the first element matching loc is visible.
func VisibilityOf(loc Locator) Condition {
	return Condition{
		Description: "visibility of " + loc.String(),
		Check: func(d Driver) (bool, error) {
			return d.IsVisible(loc)
		},
	}
}

// Clickable holds once the first element matching loc is visible and enabled.
func Clickable(loc Locator) Condition {
	return Condition{
		Description: "element to be clickable: " + loc.String(),
		Check: func(d Driver) (bool, error) {
			visible, err := d.IsVisible(loc)
			if err != nil || !visible {
				return false, err
			}
			enabled, err := d.IsEnabled(loc)
			if errors.Is(err, ErrNoElement) {
				return false, nil
			}
			return enabled, err
		},
	}
}

// URLContains holds once the current URL contains fragment.
func URLContains(fragment string) Condition {
	return Condition{
		Description: fmt.Sprintf("url to contain %q", fragment),
		Check: func(d Driver) (bool, error) {
			return strings.Contains(d.CurrentURL(), fragment), nil
		},
	}
}

// Or holds as soon as any of conds holds. An error from one branch is only
// returned when no branch holds on that attempt.
func Or(conds ...Condition) Condition {
	descriptions := make([]string, len(conds))
	for i, c := range conds {
		descriptions[i] = c.Description
	}
	return Condition{
		Description: "at least one of [" + strings.Join(descriptions, ", ") + "]",
		Check: func(d Driver) (bool, error) {
			var lastErr error
			for _, c := range conds {
				ok, err := c.Check(d)
				if err != nil {
					lastErr = err
					continue
				}
				if ok {
					return true, nil
				}
			}
			return false, lastErr
		},
	}
}

// Wait polls a condition against a driver until it holds or the timeout
// elapses. It blocks the caller and cannot be cancelled.
type Wait struct {
	driver   Driver
	timeout  time.Duration
	interval time.Duration

	now   func() time.Time
	sleep func(time.Duration)
}

// NewWait creates a wait with the given budget and polling interval.
func NewWait(d Driver, timeout, interval time.Duration) *Wait {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &Wait{
		driver:   d,
		timeout:  timeout,
		interval: interval,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Timeout returns the wait's budget.
func (w *Wait) Timeout() time.Duration {
	return w.timeout
}

// Until evaluates cond at least once. It returns nil when cond holds, the
// condition's own error (wrapped) when evaluation fails, and a *TimeoutError
// when the budget runs out.
func (w *Wait) Until(cond Condition) error {
	deadline := w.now().Add(w.timeout)
	for {
		ok, err := cond.Check(w.driver)
		if err != nil {
			return fmt.Errorf("waiting for %s: %w", cond.Description, err)
		}
		if ok {
			return nil
		}

		remaining := deadline.Sub(w.now())
		if remaining <= 0 {
			return &TimeoutError{Condition: cond.Description, Timeout: w.timeout}
		}
		if remaining < w.interval {
			w.sleep(remaining)
		} else {
			w.sleep(w.interval)
		}
	}
}
