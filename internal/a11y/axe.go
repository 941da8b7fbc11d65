// Package a11y runs axe-core inside the current page and reports the
// violations that should fail a smoke run.
package a11y

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/simplecom/storefront-smoke/internal/browser"
)

// Tags are the rule sets the scan is limited to.
var Tags = []string{"wcag2a", "wcag2aa"}

// Violation is one failed axe rule and the nodes it failed on.
type Violation struct {
	ID          string `json:"id"`
	Impact      string `json:"impact"`
	Description string `json:"description"`
	HelpURL     string `json:"helpUrl"`
	Nodes       []Node `json:"nodes"`
}

// Node is one offending element, addressed by its selector path.
type Node struct {
	Target []string `json:"target"`
}

// runAxe resolves include against the document, falling back to the whole
// document when it is empty or matches nothing.
const runAxe = `async ({ include, tags }) => {
  const root = (include && document.querySelector(include)) || document;
  const results = await axe.run(root, { runOnly: { type: 'tag', values: tags } });
  return results.violations.map((v) => ({
    id: v.id,
    impact: v.impact || '',
    description: v.description,
    helpUrl: v.helpUrl,
    nodes: v.nodes.map((n) => ({ target: n.target.map(String) })),
  }));
}`

// Scan injects the axe script from scriptURL into the current page and runs
// it over the element matching include, or the whole page when include is
// empty.
func Scan(d browser.Driver, scriptURL, include string) ([]Violation, error) {
	if err := d.InjectScript(scriptURL); err != nil {
		return nil, err
	}
	raw, err := d.Evaluate(runAxe, map[string]any{"include": include, "tags": Tags})
	if err != nil {
		return nil, fmt.Errorf("axe run failed: %w", err)
	}

	// The page hands back generic JSON values; round-trip them into types.
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode axe result: %w", err)
	}
	var violations []Violation
	if err := json.Unmarshal(encoded, &violations); err != nil {
		return nil, fmt.Errorf("failed to parse axe result: %w", err)
	}
	return violations, nil
}

// Serious keeps the critical and serious violations.
func Serious(violations []Violation) []Violation {
	var out []Violation
	for _, v := range violations {
		if v.Impact == "critical" || v.Impact == "serious" {
			out = append(out, v)
		}
	}
	return out
}

// Format renders violations found on page as an indented list.
func Format(page string, violations []Violation) string {
	if len(violations) == 0 {
		return fmt.Sprintf("No serious/critical accessibility violations detected on %s.", page)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Accessibility violations detected on %s:", page)
	for _, v := range violations {
		impact := v.Impact
		if impact == "" {
			impact = "unknown"
		}
		fmt.Fprintf(&b, "\n  - %s (%s)", v.ID, impact)
		for _, n := range v.Nodes {
			fmt.Fprintf(&b, "\n    - %s", strings.Join(n.Target, ", "))
		}
	}
	return b.String()
}
