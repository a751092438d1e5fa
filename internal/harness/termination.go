package harness

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Verdict is the coarse taxonomy the engine reconstructs from a raw OS
// termination.
type Verdict string

const (
	VerdictSuccess Verdict = "SUCCESS"
	VerdictFailure Verdict = "FAILURE"
	VerdictTimeout Verdict = "TIMEOUT"
	VerdictKilled  Verdict = "KILLED"
)

// TimeoutCode is the reserved exit status that Classify maps to TIMEOUT.
// It is chosen well outside the conventional 0-127 range test authors use
// for genuine exit codes. ForkSRunner has no supervisor process and never
// produces this status itself; it reports a timeout as the worker's death
// by TimeoutSignal.
const TimeoutCode = 217

// TimeoutSignal is the reserved signal sent to a worker that has exceeded
// its timeout. SIGUSR1 has no default meaning for ordinary test code, so
// a worker that dies from it unambiguously means "timed out" rather than
// "crashed".
const TimeoutSignal = unix.SIGUSR1

// Termination is the raw outcome of one supervised (or in-process) test
// execution, before classification.
type Termination struct {
	Exited     bool
	ExitCode   int
	Signaled   bool
	Signal     unix.Signal
	ElapsedMS  int64
	SyntheticT bool // marks an ElapsedMS measured across a synthesized timeout; no Runner in this package sets it
}

// Classification is the derived verdict plus the diagnostic detail text,
// e.g. "status 0" or `signal "segmentation fault"`.
type Classification struct {
	Verdict Verdict
	Detail  string
	Code    int         // meaningful for FAILURE/TIMEOUT/SUCCESS
	Signal  unix.Signal // meaningful for KILLED
}

// Classify turns a raw Termination into a Classification, following the
// classic WIFEXITED/WIFSIGNALED split.
func Classify(t Termination) Classification {
	switch {
	case t.Exited && t.ExitCode == TimeoutCode:
		return Classification{Verdict: VerdictTimeout, Detail: fmt.Sprintf("status %d", t.ExitCode), Code: t.ExitCode}
	case t.Exited && t.ExitCode == 0:
		return Classification{Verdict: VerdictSuccess, Detail: "status 0", Code: 0}
	case t.Exited:
		return Classification{Verdict: VerdictFailure, Detail: fmt.Sprintf("status %d", t.ExitCode), Code: t.ExitCode}
	case t.Signaled && t.Signal == TimeoutSignal:
		return Classification{
			Verdict: VerdictTimeout,
			Detail:  fmt.Sprintf("signal %q", signalName(t.Signal)),
			Signal:  t.Signal,
		}
	case t.Signaled:
		return Classification{
			Verdict: VerdictKilled,
			Detail:  fmt.Sprintf("signal %q", signalName(t.Signal)),
			Signal:  t.Signal,
		}
	default:
		// Neither exited nor signaled is not a representable OS
		// termination; treat conservatively as a failure rather than
		// panicking the engine over a malformed Termination.
		return Classification{Verdict: VerdictFailure, Detail: "status -1", Code: -1}
	}
}

// signalName renders a signal the way strsignal(3) would ("segmentation
// fault" rather than "SIGSEGV"), matching the original's diagnostic text.
func signalName(s unix.Signal) string {
	return s.String()
}

// IsSuccess reports whether the classification counts as a passing test
// for the summary tally: failed is the number of non-SUCCESS verdicts.
func (c Classification) IsSuccess() bool {
	return c.Verdict == VerdictSuccess
}
