package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/simplecom/storefront-smoke/internal/scenario"
)

var (
	passLabel = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	dim       = color.New(color.Faint).SprintFunc()
)

// Report prints one line per result, the failure detail indented beneath
// it, and a summary line.
func Report(out io.Writer, suite string, results scenario.Results) {
	fmt.Fprintf(out, "[%s]\n", suite)
	for _, r := range results {
		if r.Passed() {
			fmt.Fprintf(out, "  %s %s %s\n", passLabel("PASS"), r.Name, dim(r.Duration.Round(time.Millisecond)))
			continue
		}
		fmt.Fprintf(out, "  %s %s %s\n", failLabel("FAIL"), r.Name, dim(r.Duration.Round(time.Millisecond)))
		for _, line := range strings.Split(r.Err.Error(), "\n") {
			fmt.Fprintf(out, "      %s\n", line)
		}
	}

	failed := results.Failed()
	summary := fmt.Sprintf("%d passed, %d failed", len(results)-failed, failed)
	if failed > 0 {
		fmt.Fprintln(out, failLabel(summary))
	} else {
		fmt.Fprintln(out, passLabel(summary))
	}
}
