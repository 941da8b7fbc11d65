package main

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/simplecom/storefront-smoke/internal/config"
	"github.com/simplecom/storefront-smoke/internal/perf"
)

// runWith parses args against flags and hands the context to action
func runWith(t *testing.T, flags []cli.Flag, args []string, action func(c *cli.Context) error) error {
	t.Helper()
	app := &cli.App{
		Name:   "storefront-smoke",
		Writer: io.Discard,
		Commands: []*cli.Command{
			{Name: "check", Flags: flags, Action: action},
		},
	}
	return app.Run(append([]string{"storefront-smoke", "check"}, args...))
}

func TestOverridesFrom(t *testing.T) {
	var got config.Overrides
	err := runWith(t, a11yFlags, []string{
		"--base-url", "http://localhost:8080",
		"--user", "visual_user",
		"--pass", "secret_sauce",
		"--browser", "firefox",
		"--api-base", "http://localhost:8080/api",
		"--api-token", "Bearer abc123",
		"--api-key", "reqres-free-v1",
		"--axe-url", "http://localhost:8080/axe.js",
		"--headless=false",
	}, func(c *cli.Context) error {
		got = overridesFrom(c)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", got.BaseURL)
	assert.Equal(t, "visual_user", got.Username)
	assert.Equal(t, "secret_sauce", got.Password)
	assert.Equal(t, "firefox", got.Browser)
	assert.Equal(t, "http://localhost:8080/api", got.APIBase)
	assert.Equal(t, "Bearer abc123", got.APIToken)
	assert.Equal(t, "reqres-free-v1", got.APIKey)
	assert.Equal(t, "http://localhost:8080/axe.js", got.AxeURL)
	require.NotNil(t, got.Headless)
	assert.False(t, *got.Headless)
}

func TestOverridesFrom_UnsetFlagsLeaveEnvironmentInCharge(t *testing.T) {
	var got config.Overrides
	err := runWith(t, suiteFlags, nil, func(c *cli.Context) error {
		got = overridesFrom(c)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, config.Overrides{}, got)

	api := config.LoadAPIConfig(func(key string) string {
		return map[string]string{"API_TOKEN": "Bearer from-env", "API_KEY": "env-key"}[key]
	}, got)
	assert.Equal(t, "Bearer from-env", api.Token)
	assert.Equal(t, "env-key", api.Key)
}

func TestPerfOptionsFrom(t *testing.T) {
	var got perf.Options
	err := runWith(t, perfFlags, []string{"--vus", "2", "--duration", "30s", "--p95", "2s"}, func(c *cli.Context) error {
		var err error
		got, err = perfOptionsFrom(c)
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 2, got.VUs)
	assert.Equal(t, 30*time.Second, got.Duration)
	assert.Equal(t, 2*time.Second, got.MaxP95)
	assert.Equal(t, perf.DefaultOptions().Pace, got.Pace)
	assert.Equal(t, perf.DefaultOptions().MinCheckRate, got.MinCheckRate)
}

func TestPerfOptionsFrom_RejectsNoUsers(t *testing.T) {
	err := runWith(t, perfFlags, []string{"--vus", "0"}, func(c *cli.Context) error {
		_, err := perfOptionsFrom(c)
		return err
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--vus")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 130, exitCode(cli.Exit("interrupted", 130)))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}
