package harness

import "context"

// NoForkRunner invokes the entry directly in the engine process. A
// crashing or non-terminating test takes the whole engine down with it;
// that trade-off is intentional and is why this mode exists at all - it
// lets a native debugger attach to the one process doing the work.
type NoForkRunner struct{}

func (NoForkRunner) Run(_ context.Context, d Descriptor, opts RunOptions) Termination {
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock
	}

	argv := append([]string{opts.SelfPath}, opts.Argv...)

	start := clock.Now()
	code := d.Entry(len(argv), argv)
	end := clock.Now()

	return Termination{
		Exited:    true,
		ExitCode:  code,
		ElapsedMS: ElapsedMillis(start, end),
	}
}
