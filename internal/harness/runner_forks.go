package harness

import (
	"context"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

func firstNonNilWriter(w io.Writer, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}

// gracePeriod is how long ForkSRunner waits after sending TimeoutSignal
// before escalating to an unblockable SIGKILL, so a worker that traps or
// ignores TimeoutSignal cannot wedge a forkp cohort forever.
const gracePeriod = 5 * time.Second

// ForkSRunner runs one test as a genuine re-exec'd OS process (see
// worker.go), with a timer goroutine standing in for a C-style
// alarm(2)+SIGUSR1 pair: on timeout it signals the worker and, if the
// worker ignores it, escalates to an unblockable SIGKILL.
type ForkSRunner struct{}

func (ForkSRunner) Run(ctx context.Context, d Descriptor, opts RunOptions) Termination {
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock
	}

	selfPath := opts.SelfPath
	if selfPath == "" {
		if p, err := os.Executable(); err == nil {
			selfPath = p
		}
	}

	argv := append([]string{selfPath}, opts.Argv...)
	logger := TestLogger(d, io.Discard)

	cmd := exec.Command(selfPath, argv[1:]...)
	cmd.Args = argv
	cmd.Env = append(os.Environ(), workerTestEnv+"="+d.ID())
	cmd.Stdin = os.Stdin
	cmd.Stdout = firstNonNilWriter(opts.Stdout, os.Stdout)
	cmd.Stderr = firstNonNilWriter(opts.Stderr, os.Stderr)

	start := clock.Now()

	logger.Debugln("spawning worker")
	if err := cmd.Start(); err != nil {
		return Termination{Exited: true, ExitCode: internalFaultCode, ElapsedMS: ElapsedMillis(start, clock.Now())}
	}

	waitDone := make(chan error, 1)
	go func() { waitDone <- cmd.Wait() }()

	var alarm *time.Timer
	if opts.TimeoutSeconds > 0 {
		alarm = time.AfterFunc(time.Duration(opts.TimeoutSeconds)*time.Second, func() {
			logger.Warnln("timeout fired, signaling worker")
			signalChild(cmd, TimeoutSignal)
			time.AfterFunc(gracePeriod, func() {
				logger.Errorln("worker ignored timeout signal, escalating to SIGKILL")
				signalChild(cmd, unix.SIGKILL)
			})
		})
	}

	select {
	case <-waitDone:
	case <-ctx.Done():
		logger.Warnln("run canceled, sending SIGTERM")
		signalChild(cmd, unix.SIGTERM)
		select {
		case <-waitDone:
		case <-time.After(gracePeriod):
			logger.Errorln("worker ignored SIGTERM, escalating to SIGKILL")
			signalChild(cmd, unix.SIGKILL)
			<-waitDone
		}
	}

	if alarm != nil {
		alarm.Stop()
	}

	elapsed := ElapsedMillis(start, clock.Now())
	return classifyProcessState(cmd.ProcessState, elapsed)
}

func signalChild(cmd *exec.Cmd, sig unix.Signal) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Signal(sig)
}

// classifyProcessState turns os/exec's structured wait-status into a
// Termination, the Go equivalent of a WIFEXITED/WIFSIGNALED split but
// without a second fork: os/exec already hands the direct parent
// everything that split needs.
func classifyProcessState(state *os.ProcessState, elapsed int64) Termination {
	if state == nil {
		return Termination{Exited: true, ExitCode: internalFaultCode, ElapsedMS: elapsed}
	}

	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok {
		return Termination{Exited: true, ExitCode: state.ExitCode(), ElapsedMS: elapsed}
	}

	if ws.Signaled() {
		return Termination{Signaled: true, Signal: unix.Signal(ws.Signal()), ElapsedMS: elapsed}
	}
	return Termination{Exited: true, ExitCode: ws.ExitStatus(), ElapsedMS: elapsed}
}
