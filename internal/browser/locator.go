// Package browser wraps the primitives the page objects need from a live
// browser page and the explicit waits built on top of them.
package browser

import "fmt"

// Strategy is how a Locator's value is interpreted.
type Strategy string

const (
	ByCSS   Strategy = "css"
	ByXPath Strategy = "xpath"
	ByText  Strategy = "text"
)

// Locator describes one UI element. A CSS value may list alternatives
// separated by commas; nothing else implies a fallback order.
type Locator struct {
	Strategy Strategy
	Value    string
}

func CSS(selector string) Locator   { return Locator{Strategy: ByCSS, Value: selector} }
func XPath(selector string) Locator { return Locator{Strategy: ByXPath, Value: selector} }

// Text matches elements whose text contains s.
func Text(s string) Locator { return Locator{Strategy: ByText, Value: s} }

// Selector renders the locator in Playwright's "engine=body" form.
func (l Locator) Selector() string {
	return string(l.Strategy) + "=" + l.Value
}

func (l Locator) String() string {
	return fmt.Sprintf("%s %q", l.Strategy, l.Value)
}
