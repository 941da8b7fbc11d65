//go:build e2e

// Package e2eutil loads configuration for the live suites and holds the
// class-scoped browser session each suite's TestMain owns.
package e2eutil

import (
	"fmt"
	"log"
	"net"
	"os"

	"github.com/joho/godotenv"

	"github.com/simplecom/storefront-smoke/internal/cli"
	"github.com/simplecom/storefront-smoke/internal/config"
	"github.com/simplecom/storefront-smoke/internal/driver"
	"github.com/simplecom/storefront-smoke/internal/logging"
)

// TargetEnv selects what the suites run against: unset for the public
// services, "fixture" for a local fixture server started per package.
const TargetEnv = "E2E_TARGET"

// Env is the resolved configuration of one suite run.
type Env struct {
	App     config.AppConfig
	Browser config.BrowserConfig
	API     config.APIConfig
	Logger  logging.Logger
}

// Load reads .env from the repository root, then the environment. With
// E2E_TARGET=fixture it starts the fixture server and points both suites
// at it; the returned stop func shuts it down.
func Load() (Env, func(), error) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	var overrides config.Overrides
	stop := func() {}
	if os.Getenv(TargetEnv) == "fixture" {
		base, shutdown, err := startFixture()
		if err != nil {
			return Env{}, stop, err
		}
		overrides.BaseURL = base
		overrides.APIBase = base + "/api"
		stop = shutdown
	}

	browserConfig, err := config.LoadBrowserConfig(os.Getenv, overrides)
	if err != nil {
		stop()
		return Env{}, func() {}, err
	}
	return Env{
		App:     config.LoadAppConfig(os.Getenv, overrides),
		Browser: browserConfig,
		API:     config.LoadAPIConfig(os.Getenv, overrides),
		Logger:  logging.Default(),
	}, stop, nil
}

func startFixture() (string, func(), error) {
	deps, err := cli.BuildServerDependencies(config.ServerConfig{Port: "0"})
	if err != nil {
		return "", nil, err
	}
	listener, server, err := cli.StartServer(deps)
	if err != nil {
		return "", nil, err
	}
	base := fmt.Sprintf("http://localhost:%d", listener.Addr().(*net.TCPAddr).Port)
	return base, func() {
		server.Close()
		listener.Close()
	}, nil
}

// NewFactory returns a session factory backed by a real browser.
func NewFactory(env Env) *driver.Factory {
	return driver.NewFactory(driver.NewPlaywrightBackend(), env.Logger)
}
