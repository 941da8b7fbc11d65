package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightDriver implements Driver on a single playwright page.
type PlaywrightDriver struct {
	page          playwright.Page
	actionTimeout float64
	closers       []func() error
}

// NewPlaywrightDriver wraps page. actionTimeout bounds the implicit
// actionability wait of Fill and Click. closers run in order on Close and
// should tear down the page's context, browser and driver process.
func NewPlaywrightDriver(page playwright.Page, actionTimeout time.Duration, closers ...func() error) *PlaywrightDriver {
	return &PlaywrightDriver{
		page:          page,
		actionTimeout: float64(actionTimeout.Milliseconds()),
		closers:       closers,
	}
}

func (d *PlaywrightDriver) Navigate(url string) error {
	if _, err := d.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	return nil
}

func (d *PlaywrightDriver) CurrentURL() string {
	return d.page.URL()
}

func (d *PlaywrightDriver) PageSource() (string, error) {
	content, err := d.page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page source: %w", err)
	}
	return content, nil
}

func (d *PlaywrightDriver) Count(loc Locator) (int, error) {
	return d.page.Locator(loc.Selector()).Count()
}

func (d *PlaywrightDriver) IsVisible(loc Locator) (bool, error) {
	return d.page.Locator(loc.Selector()).First().IsVisible()
}

func (d *PlaywrightDriver) IsEnabled(loc Locator) (bool, error) {
	first, err := d.existing(loc)
	if err != nil {
		return false, err
	}
	return first.IsEnabled(playwright.LocatorIsEnabledOptions{Timeout: playwright.Float(d.actionTimeout)})
}

func (d *PlaywrightDriver) Text(loc Locator) (string, error) {
	first, err := d.existing(loc)
	if err != nil {
		return "", err
	}
	return first.TextContent(playwright.LocatorTextContentOptions{Timeout: playwright.Float(d.actionTimeout)})
}

func (d *PlaywrightDriver) Fill(loc Locator, value string) error {
	if err := d.page.Locator(loc.Selector()).First().Fill(value, playwright.LocatorFillOptions{
		Timeout: playwright.Float(d.actionTimeout),
	}); err != nil {
		return fmt.Errorf("failed to fill %s: %w", loc, err)
	}
	return nil
}

func (d *PlaywrightDriver) Click(loc Locator) error {
	if err := d.page.Locator(loc.Selector()).First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(d.actionTimeout),
	}); err != nil {
		return fmt.Errorf("failed to click %s: %w", loc, err)
	}
	return nil
}

func (d *PlaywrightDriver) InjectScript(url string) error {
	if _, err := d.page.AddScriptTag(playwright.PageAddScriptTagOptions{URL: playwright.String(url)}); err != nil {
		return fmt.Errorf("failed to inject %s: %w", url, err)
	}
	return nil
}

func (d *PlaywrightDriver) Evaluate(expression string, arg any) (any, error) {
	return d.page.Evaluate(expression, arg)
}

// Close runs every closer, even after a failure, and joins their errors.
func (d *PlaywrightDriver) Close() error {
	var errs []error
	for _, c := range d.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// existing returns the first match, failing fast when there is none so the
// auto-waiting playwright calls below it never block.
func (d *PlaywrightDriver) existing(loc Locator) (playwright.Locator, error) {
	l := d.page.Locator(loc.Selector())
	n, err := l.Count()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoElement, loc)
	}
	return l.First(), nil
}
