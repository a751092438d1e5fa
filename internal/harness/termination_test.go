package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestClassifySuccess(t *testing.T) {
	c := Classify(Termination{Exited: true, ExitCode: 0})
	require.Equal(t, VerdictSuccess, c.Verdict)
	require.True(t, c.IsSuccess())
}

func TestClassifyFailure(t *testing.T) {
	c := Classify(Termination{Exited: true, ExitCode: 1})
	require.Equal(t, VerdictFailure, c.Verdict)
	require.False(t, c.IsSuccess())
	require.Equal(t, 1, c.Code)
}

func TestClassifyExitedTimeoutCode(t *testing.T) {
	c := Classify(Termination{Exited: true, ExitCode: TimeoutCode})
	require.Equal(t, VerdictTimeout, c.Verdict)
}

func TestClassifySignaledTimeout(t *testing.T) {
	c := Classify(Termination{Signaled: true, Signal: TimeoutSignal})
	require.Equal(t, VerdictTimeout, c.Verdict)
	require.Equal(t, TimeoutSignal, c.Signal)
}

func TestClassifySignaledOther(t *testing.T) {
	c := Classify(Termination{Signaled: true, Signal: unix.SIGSEGV})
	require.Equal(t, VerdictKilled, c.Verdict)
	require.Contains(t, c.Detail, "segmentation fault")
}

func TestClassifyNeitherExitedNorSignaled(t *testing.T) {
	c := Classify(Termination{})
	require.Equal(t, VerdictFailure, c.Verdict)
	require.Equal(t, -1, c.Code)
}
