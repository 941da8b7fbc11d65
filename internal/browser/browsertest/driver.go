// Package browsertest provides an in-memory browser.Driver for tests.
package browsertest

import (
	"fmt"
	"sync"

	"github.com/simplecom/storefront-smoke/internal/browser"
)

// Element is the state of every element matching one locator.
type Element struct {
	Count   int
	Visible bool
	Enabled bool
	Text    string
	// VisibleAfter delays visibility until the element has been queried
	// that many times.
	VisibleAfter int
}

// Driver is a scriptable fake page. Unknown locators match nothing.
type Driver struct {
	mu         sync.Mutex
	url        string
	source     string
	elements   map[browser.Locator]*Element
	queries    map[browser.Locator]int
	queryErrs  map[browser.Locator]error
	onClick    map[browser.Locator]func(d *Driver)
	onNavigate func(d *Driver, url string)
	evaluate   func(expression string, arg any) (any, error)
	injectErr  error
	calls      []string
	closed     int
	closeErr   error
}

func NewDriver() *Driver {
	return &Driver{
		elements:  make(map[browser.Locator]*Element),
		queries:   make(map[browser.Locator]int),
		queryErrs: make(map[browser.Locator]error),
		onClick:   make(map[browser.Locator]func(d *Driver)),
	}
}

// Show makes loc match one visible, enabled element.
func (d *Driver) Show(loc browser.Locator) *Driver {
	return d.Set(loc, Element{Count: 1, Visible: true, Enabled: true})
}

// Hide removes every element matching loc.
func (d *Driver) Hide(loc browser.Locator) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.elements, loc)
	return d
}

func (d *Driver) Set(loc browser.Locator, e Element) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	el := e
	d.elements[loc] = &el
	return d
}

// FailQueries makes every query against loc return err.
func (d *Driver) FailQueries(loc browser.Locator, err error) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queryErrs[loc] = err
	return d
}

// OnClick runs fn after loc is clicked.
func (d *Driver) OnClick(loc browser.Locator, fn func(d *Driver)) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onClick[loc] = fn
	return d
}

// OnNavigate runs fn after every navigation.
func (d *Driver) OnNavigate(fn func(d *Driver, url string)) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onNavigate = fn
	return d
}

// OnEvaluate answers every Evaluate call with fn.
func (d *Driver) OnEvaluate(fn func(expression string, arg any) (any, error)) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.evaluate = fn
	return d
}

// FailInject makes InjectScript return err.
func (d *Driver) FailInject(err error) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.injectErr = err
	return d
}

func (d *Driver) SetURL(url string) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.url = url
	return d
}

func (d *Driver) SetSource(source string) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.source = source
	return d
}

func (d *Driver) SetCloseError(err error) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closeErr = err
	return d
}

// Calls returns the recorded navigate, fill, click and inject actions in order.
func (d *Driver) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

// Queries returns how many times loc was queried.
func (d *Driver) Queries(loc browser.Locator) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.queries[loc]
}

func (d *Driver) Closed() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

func (d *Driver) Navigate(url string) error {
	d.mu.Lock()
	d.url = url
	d.calls = append(d.calls, "navigate "+url)
	fn := d.onNavigate
	d.mu.Unlock()
	if fn != nil {
		fn(d, url)
	}
	return nil
}

func (d *Driver) CurrentURL() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.url
}

func (d *Driver) PageSource() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.source, nil
}

func (d *Driver) Count(loc browser.Locator) (int, error) {
	el, err := d.query(loc)
	if err != nil || el == nil {
		return 0, err
	}
	return el.Count, nil
}

func (d *Driver) IsVisible(loc browser.Locator) (bool, error) {
	el, err := d.query(loc)
	if err != nil || el == nil {
		return false, err
	}
	return el.Count > 0 && el.Visible && d.Queries(loc) > el.VisibleAfter, nil
}

func (d *Driver) IsEnabled(loc browser.Locator) (bool, error) {
	el, err := d.query(loc)
	if err != nil {
		return false, err
	}
	if el == nil || el.Count == 0 {
		return false, fmt.Errorf("%w: %s", browser.ErrNoElement, loc)
	}
	return el.Enabled, nil
}

func (d *Driver) Text(loc browser.Locator) (string, error) {
	el, err := d.query(loc)
	if err != nil {
		return "", err
	}
	if el == nil || el.Count == 0 {
		return "", fmt.Errorf("%w: %s", browser.ErrNoElement, loc)
	}
	return el.Text, nil
}

func (d *Driver) Fill(loc browser.Locator, value string) error {
	if err := d.act(loc); err != nil {
		return err
	}
	d.mu.Lock()
	d.calls = append(d.calls, fmt.Sprintf("fill %s %s", loc, value))
	d.mu.Unlock()
	return nil
}

func (d *Driver) Click(loc browser.Locator) error {
	if err := d.act(loc); err != nil {
		return err
	}
	d.mu.Lock()
	d.calls = append(d.calls, fmt.Sprintf("click %s", loc))
	fn := d.onClick[loc]
	d.mu.Unlock()
	if fn != nil {
		fn(d)
	}
	return nil
}

func (d *Driver) InjectScript(url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.injectErr != nil {
		return d.injectErr
	}
	d.calls = append(d.calls, "inject "+url)
	return nil
}

// Evaluate returns nil unless OnEvaluate installed an answer.
func (d *Driver) Evaluate(expression string, arg any) (any, error) {
	d.mu.Lock()
	fn := d.evaluate
	d.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(expression, arg)
}

func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed++
	return d.closeErr
}

func (d *Driver) query(loc browser.Locator) (*Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queries[loc]++
	if err := d.queryErrs[loc]; err != nil {
		return nil, err
	}
	el, ok := d.elements[loc]
	if !ok {
		return nil, nil
	}
	cp := *el
	return &cp, nil
}

func (d *Driver) act(loc browser.Locator) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.elements[loc]
	if !ok || el.Count == 0 {
		return fmt.Errorf("%w: %s", browser.ErrNoElement, loc)
	}
	return nil
}

var _ browser.Driver = (*Driver)(nil)
