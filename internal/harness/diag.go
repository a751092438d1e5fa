package harness

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// DiagnosticFormatter renders one verdict line per test, in a fixed
// layout:
//
//	[<VERDICT>] run test "<suite>.<name>" in <ms> ms (<detail>)
//
// SUCCESS renders green, everything else red, when the sink is a
// terminal; color is suppressed for a log sink.
type DiagnosticFormatter struct {
	out       io.Writer
	colorizer *color.Color // nil sink (e.g. silent discard) still formats plainly
	success   *color.Color
	failure   *color.Color
}

// NewDiagnosticFormatter builds a formatter writing to out. isTerminal
// governs whether ANSI color is emitted; pass SinkIsTerminal(out) for the
// conventional behavior.
func NewDiagnosticFormatter(out io.Writer, isTerminal bool) *DiagnosticFormatter {
	success := color.New(color.FgGreen)
	failure := color.New(color.FgRed)
	if isTerminal {
		success.EnableColor()
		failure.EnableColor()
	} else {
		success.DisableColor()
		failure.DisableColor()
	}
	return &DiagnosticFormatter{out: out, success: success, failure: failure}
}

// SinkIsTerminal reports whether w is a terminal file descriptor, using
// the same mattn/go-isatty check CLI tooling across the ecosystem uses to
// decide whether to emit ANSI color.
func SinkIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Write renders one verdict line for descriptor d given its
// Classification and elapsed time.
func (f *DiagnosticFormatter) Write(d Descriptor, c Classification, elapsedMS int64) error {
	colorizer := f.failure
	if c.IsSuccess() {
		colorizer = f.success
	}

	label := colorizer.Sprintf("[%s]", c.Verdict)
	line := fmt.Sprintf("%s run test %q in %d ms (%s)\n", label, d.ID(), elapsedMS, c.Detail)
	_, err := io.WriteString(f.out, line)
	return err
}
