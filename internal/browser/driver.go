package browser

// Driver is the set of page primitives the page objects use. Query methods
// never wait: a missing element is reported as zero, false or an error, and
// the waiting lives in Wait.
type Driver interface {
	Navigate(url string) error
	CurrentURL() string
	PageSource() (string, error)
	Count(loc Locator) (int, error)
	IsVisible(loc Locator) (bool, error)
	IsEnabled(loc Locator) (bool, error)
	Text(loc Locator) (string, error)
	Fill(loc Locator, value string) error
	Click(loc Locator) error
	// InjectScript loads the script at url into the current page.
	InjectScript(url string) error
	// Evaluate runs a JavaScript expression in the page and returns its
	// JSON-compatible result. Promises are awaited.
	Evaluate(expression string, arg any) (any, error)
	// Close tears down the page and everything started for it.
	Close() error
}
