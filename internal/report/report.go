package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Reporter prints probe outcomes for the command-line tools: a banner, one
// pass/fail line per check, and a closing summary. It also keeps the
// pass/fail tally the process exit code is derived from.
type Reporter struct {
	w      io.Writer
	passed int
	failed int
}

func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

var (
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
)

// Banner prints the run header.
func (r *Reporter) Banner(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
	fmt.Fprintln(r.w, strings.Repeat("=", 50))
}

// Section starts a named check.
func (r *Reporter) Section(format string, args ...any) {
	fmt.Fprintf(r.w, "\n"+format+"\n", args...)
}

// Step prints a plain progress line.
func (r *Reporter) Step(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

// Pass records and prints a passed check.
func (r *Reporter) Pass(format string, args ...any) {
	r.passed++
	_, _ = green.Fprintf(r.w, "✓ "+format+"\n", args...)
}

// Fail records and prints a failed check.
func (r *Reporter) Fail(format string, args ...any) {
	r.failed++
	_, _ = red.Fprintf(r.w, "✗ "+format+"\n", args...)
}

// Warn prints a non-fatal notice; it does not count toward the tally.
func (r *Reporter) Warn(format string, args ...any) {
	_, _ = yellow.Fprintf(r.w, "⚠ "+format+"\n", args...)
}

// Summary prints the closing tally and reports whether every check passed.
func (r *Reporter) Summary() bool {
	fmt.Fprintln(r.w, "\n"+strings.Repeat("=", 50))
	if r.failed == 0 {
		_, _ = green.Fprintf(r.w, "All checks passed (%d)\n", r.passed)
		return true
	}
	_, _ = red.Fprintf(r.w, "%d of %d checks failed\n", r.failed, r.passed+r.failed)
	return false
}

// Failed returns the number of failed checks so far.
func (r *Reporter) Failed() int {
	return r.failed
}
