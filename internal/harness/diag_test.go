package harness

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestDiagnosticFormatterWritePlain(t *testing.T) {
	var buf bytes.Buffer
	f := NewDiagnosticFormatter(&buf, false)

	d := Descriptor{Suite: "test", Name: "success"}
	c := Classify(Termination{Exited: true, ExitCode: 0})

	require.NoError(t, f.Write(d, c, 12))
	require.Equal(t, `[SUCCESS] run test "test.success" in 12 ms (status 0)`+"\n", buf.String())
}

func TestDiagnosticFormatterFailureAndKilled(t *testing.T) {
	var buf bytes.Buffer
	f := NewDiagnosticFormatter(&buf, false)

	d := Descriptor{Suite: "test", Name: "failure"}
	c := Classify(Termination{Exited: true, ExitCode: 7})
	require.NoError(t, f.Write(d, c, 1))
	require.Contains(t, buf.String(), `[FAILURE] run test "test.failure" in 1 ms (status 7)`)

	buf.Reset()
	d = Descriptor{Suite: "test", Name: "segfault"}
	c = Classify(Termination{Signaled: true, Signal: unix.SIGSEGV})
	require.NoError(t, f.Write(d, c, 3))
	require.Contains(t, buf.String(), "[KILLED]")

	buf.Reset()
	d = Descriptor{Suite: "test", Name: "slow"}
	c = Classify(Termination{Signaled: true, Signal: TimeoutSignal})
	require.NoError(t, f.Write(d, c, 3))
	require.Contains(t, buf.String(), "[TIMEOUT]")
}

func TestDiagnosticFormatterColorOnTerminal(t *testing.T) {
	var buf bytes.Buffer
	f := NewDiagnosticFormatter(&buf, true)

	d := Descriptor{Suite: "test", Name: "success"}
	c := Classify(Termination{Exited: true, ExitCode: 0})
	require.NoError(t, f.Write(d, c, 0))
	require.Contains(t, buf.String(), "\x1b[")
}

func TestSinkIsTerminalFalseForBuffer(t *testing.T) {
	var buf bytes.Buffer
	require.False(t, SinkIsTerminal(&buf))
}
