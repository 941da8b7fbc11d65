//go:build e2e

package e2eutil

import (
	"fmt"
	"os"
	"testing"

	"github.com/simplecom/storefront-smoke/internal/driver"
)

// RunClass is a TestMain body for a browser suite: it acquires one session,
// runs the package's tests on it and releases it, whatever they did. A
// session that cannot start fails the whole package without running it.
func RunClass(m *testing.M, run func(env Env, s *driver.Session)) int {
	env, stop, err := Load()
	defer stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	factory := NewFactory(env)
	s, err := factory.Acquire(env.Browser)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Aborting suite: %v\n", err)
		return 1
	}
	defer factory.Release(s)

	run(env, s)
	return m.Run()
}
