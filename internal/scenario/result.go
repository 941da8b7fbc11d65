// Package scenario composes the page objects and the API client into the
// smoke flows and runs them with a class-scoped browser session.
package scenario

import (
	"fmt"
	"time"
)

// AssertionFailure is a final expectation that did not hold.
type AssertionFailure struct {
	Message string
}

func (e *AssertionFailure) Error() string {
	return "assertion failed: " + e.Message
}

// Failf returns an *AssertionFailure.
func Failf(format string, args ...interface{}) error {
	return &AssertionFailure{Message: fmt.Sprintf(format, args...)}
}

// Result is the outcome of one scenario or check.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

func (r Result) Passed() bool {
	return r.Err == nil
}

type Results []Result

// OK reports whether every result passed.
func (rs Results) OK() bool {
	return rs.Failed() == 0
}

func (rs Results) Failed() int {
	n := 0
	for _, r := range rs {
		if !r.Passed() {
			n++
		}
	}
	return n
}

// run executes fn, turning a panic into a failed result.
func run(name string, fn func() error) (result Result) {
	result.Name = name
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			result.Err = fmt.Errorf("scenario panicked: %v", p)
		}
		result.Duration = time.Since(start)
	}()
	result.Err = fn()
	return result
}
