// Package verify implements the read-only consistency checks between the
// curated CSVs, the built store, the timezone source and the flag assets.
// Validators accumulate findings instead of failing fast: a single run
// reports the full picture and the caller maps the outcome to an exit code.
package verify

import (
	"fmt"
	"io"
	"strings"
)

// Report is an accumulated validation outcome: human-readable lines plus a
// single pass/fail verdict.
type Report struct {
	lines  []string
	failed bool
}

// Infof records an informational finding.
func (r *Report) Infof(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

// Failf records a finding and marks the report failed.
func (r *Report) Failf(format string, args ...any) {
	r.failed = true
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

// Itemf records an indented detail line under the previous finding.
func (r *Report) Itemf(format string, args ...any) {
	r.lines = append(r.lines, "  "+fmt.Sprintf(format, args...))
}

// OK reports whether no failure was recorded.
func (r *Report) OK() bool {
	return !r.failed
}

// Lines returns the report lines in the order they were recorded.
func (r *Report) Lines() []string {
	return r.lines
}

// WriteTo writes the report as plain text, one finding per line.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, strings.Join(r.lines, "\n")+"\n")
	return int64(n), err
}
