package harness

import (
	"context"
	"fmt"
	"io"
)

// Mode selects one of the three execution/isolation policies: run
// in-process, re-exec one worker per test, or re-exec every worker
// concurrently.
type Mode string

const (
	ModeNoFork Mode = "nofork"
	ModeForkS  Mode = "forks"
	ModeForkP  Mode = "forkp"
)

// ParseMode validates a CLI-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeNoFork, ModeForkS, ModeForkP:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// RunOptions are the read-only, per-run settings a Runner needs. They
// mirror the Engine's configuration, minus the fields (log sink,
// silent) that are the Engine's own concern rather than the Runner's.
type RunOptions struct {
	// TimeoutSeconds is the per-test timeout; 0 means "no timeout".
	TimeoutSeconds int

	// SelfPath is the path to re-exec as a worker process in forks/forkp
	// mode (see worker.go). Every Runner, nofork included, also passes it
	// to the test as argv[0].
	SelfPath string

	// Argv is the test argv tail forwarded verbatim from the CLI's "--"
	// tail. The Runner prepends the program name as the test's argv[0].
	Argv []string

	// Stdout and Stderr are where a forked worker's stdio is connected.
	// nil means inherit the engine's own os.Stdout/os.Stderr. Set these to
	// redirect to a log file (-o) or the null device (-O).
	Stdout io.Writer
	Stderr io.Writer

	Clock Clock
}

// Runner executes one test under one isolation policy and returns its
// Termination. Cancelling ctx aborts the run: ForkSRunner then sends
// SIGTERM to its worker, and NoForkRunner ignores ctx. Per-test timeout
// enforcement is the Runner's own responsibility.
type Runner interface {
	Run(ctx context.Context, d Descriptor, opts RunOptions) Termination
}

// NewRunner returns the Runner for the given Mode.
func NewRunner(mode Mode) Runner {
	switch mode {
	case ModeNoFork:
		return NoForkRunner{}
	case ModeForkS:
		return ForkSRunner{}
	case ModeForkP:
		// forkp uses the identical per-test supervision as forks; what
		// differs is how many of them the Engine dispatches at once. See
		// Engine.Run's dispatch loop for the concurrent cohort.
		return ForkSRunner{}
	default:
		panic("testfw: unknown mode " + string(mode))
	}
}
