package scenario

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplecom/storefront-smoke/internal/browser/browsertest"
	"github.com/simplecom/storefront-smoke/internal/config"
	"github.com/simplecom/storefront-smoke/internal/logging"
	"github.com/simplecom/storefront-smoke/internal/pages/pagestest"
)

func a11yConfig() config.AppConfig {
	app := appConfig()
	app.AxeScriptURL = "http://localhost/axe.min.js"
	return app
}

func TestAccessibilityScan_ScansBothPages(t *testing.T) {
	// GIVEN a storefront with only a moderate violation on every page
	var includes []any
	d := pagestest.Storefront(browsertest.NewDriver()).OnEvaluate(func(_ string, arg any) (any, error) {
		includes = append(includes, arg.(map[string]any)["include"])
		return []any{map[string]any{"id": "region", "impact": "moderate"}}, nil
	})
	p := &fakeProvider{driver: d}

	// WHEN
	results := RunClass(p, config.BrowserConfig{}, A11yScenarios(a11yConfig()), logging.NullLogger())

	// THEN the login page is scanned whole and the inventory by its grid
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, []any{"", inventoryContainer}, includes)

	var injected int
	for _, c := range d.Calls() {
		if strings.HasPrefix(c, "inject ") {
			injected++
		}
	}
	assert.Equal(t, 2, injected)
}

func TestAccessibilityScan_SeriousViolationFailsAtLogin(t *testing.T) {
	d := pagestest.Storefront(browsertest.NewDriver()).OnEvaluate(func(string, any) (any, error) {
		return []any{map[string]any{
			"id":     "label",
			"impact": "critical",
			"nodes":  []any{map[string]any{"target": []any{"#user-name"}}},
		}}, nil
	})
	p := &fakeProvider{driver: d}

	results := RunClass(p, config.BrowserConfig{}, A11yScenarios(a11yConfig()), logging.NullLogger())

	var failure *AssertionFailure
	require.True(t, errors.As(results[0].Err, &failure))
	assert.Contains(t, failure.Message, "login page")
	assert.Contains(t, failure.Message, "label (critical)")
	assert.NotContains(t, d.Calls(), "click "+pagestest.LoginButton.String())
}
