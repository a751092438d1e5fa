package harness

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// helperRegistrar backs the re-exec'd worker process this test file spawns.
// It must be populated identically on every process start (both the parent
// test binary and the re-exec'd child run the same init()), mirroring the
// production contract between main() and worker.go's RunWorkerIfRequested.
var helperRegistrar = NewRegistrar()

func init() {
	helperRegistrar.Register("helper", "ok", func(_ int, _ []string) int { return 0 })
	helperRegistrar.Register("helper", "fail", func(_ int, _ []string) int { return 3 })
	helperRegistrar.Register("helper", "sleep", func(_ int, _ []string) int {
		time.Sleep(5 * time.Second)
		return 0
	})
	helperRegistrar.Register("helper", "args", func(argc int, argv []string) int {
		if argc != len(argv) || argc < 3 || argv[1] != "alpha" || argv[2] != "beta" {
			return 1
		}
		return 0
	})
}

// TestMain lets this test binary double as the worker process ForkSRunner
// re-execs, the same helper-process technique os/exec's own test suite
// uses: a recognized environment variable short-circuits straight into the
// worker before testing.M ever parses flags.
func TestMain(m *testing.M) {
	RunWorkerIfRequested(helperRegistrar)
	os.Exit(m.Run())
}

func TestForkSRunnerSuccess(t *testing.T) {
	r := ForkSRunner{}
	d := Descriptor{Suite: "helper", Name: "ok"}
	term := r.Run(context.Background(), d, RunOptions{SelfPath: os.Args[0]})

	require.True(t, term.Exited)
	require.Equal(t, 0, term.ExitCode)
	require.Equal(t, VerdictSuccess, Classify(term).Verdict)
}

func TestForkSRunnerFailure(t *testing.T) {
	r := ForkSRunner{}
	d := Descriptor{Suite: "helper", Name: "fail"}
	term := r.Run(context.Background(), d, RunOptions{SelfPath: os.Args[0]})

	require.True(t, term.Exited)
	require.Equal(t, 3, term.ExitCode)
	require.Equal(t, VerdictFailure, Classify(term).Verdict)
}

func TestForkSRunnerArgvForwarded(t *testing.T) {
	r := ForkSRunner{}
	d := Descriptor{Suite: "helper", Name: "args"}
	term := r.Run(context.Background(), d, RunOptions{
		SelfPath: os.Args[0],
		Argv:     []string{"alpha", "beta"},
	})

	require.True(t, term.Exited)
	require.Equal(t, 0, term.ExitCode)
}

func TestForkSRunnerTimeout(t *testing.T) {
	r := ForkSRunner{}
	d := Descriptor{Suite: "helper", Name: "sleep"}
	term := r.Run(context.Background(), d, RunOptions{
		SelfPath:       os.Args[0],
		TimeoutSeconds: 1,
	})

	c := Classify(term)
	require.Equal(t, VerdictTimeout, c.Verdict)
	require.True(t, term.Signaled)
	require.Equal(t, TimeoutSignal, term.Signal)
}

func TestForkSRunnerContextCancel(t *testing.T) {
	r := ForkSRunner{}
	d := Descriptor{Suite: "helper", Name: "sleep"}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Termination, 1)
	go func() {
		done <- r.Run(ctx, d, RunOptions{SelfPath: os.Args[0]})
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case term := <-done:
		require.True(t, term.Signaled)
	case <-time.After(10 * time.Second):
		t.Fatal("ForkSRunner did not honor context cancellation")
	}
}
