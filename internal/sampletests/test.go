// Package sampletests is a fixed suite of toy entries that exercise every
// verdict the harness can produce. It is an external collaborator, not
// part of the engine's core - ordinary registered entries, linked into
// cmd/testfw-demo as a runnable example.
package sampletests

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/kestrelfw/testfw/internal/harness"
)

func init() {
	harness.Default.Register("test", "success", testSuccess)
	harness.Default.Register("test", "failure", testFailure)
	harness.Default.Register("test", "segfault", testSegfault)
	harness.Default.Register("test", "alarm", testAlarm)
	harness.Default.Register("test", "assert", testAssert)
	harness.Default.Register("test", "sleep", testSleep)
	harness.Default.Register("test", "args", testArgs)
	harness.Default.Register("test", "infiniteloop", testInfiniteloop)
	harness.Default.Register("test", "hello", testHello)
	harness.Default.Register("test", "goodbye", testGoodbye)
}

func testSuccess(_ int, _ []string) int { return 0 }

func testFailure(_ int, _ []string) int { return 1 }

// testSegfault raises a genuine SIGSEGV against itself, the same fault
// WIFSIGNALED/WTERMSIG classification the original exercises by writing
// through a null pointer. Self-signaling is more portable across Go's
// memory model than relying on an actual invalid dereference being
// reported as SIGSEGV rather than a recovered runtime panic.
func testSegfault(_ int, _ []string) int {
	_ = unix.Kill(os.Getpid(), unix.SIGSEGV)
	return 0
}

func testAlarm(_ int, _ []string) int {
	_ = unix.Kill(os.Getpid(), unix.SIGALRM)
	return 0
}

// testAssert mirrors an aborted assertion: SIGABRT, the signal a C
// assert(3) failure raises.
func testAssert(_ int, _ []string) int {
	_ = unix.Kill(os.Getpid(), unix.SIGABRT)
	return 0
}

// testSleep blocks for 5s, well past the forks default timeout of 2s,
// to exercise TIMEOUT classification.
func testSleep(_ int, _ []string) int {
	time.Sleep(5 * time.Second)
	return 0
}

// testArgs verifies the argv forwarding contract: argv[0] is the program
// name, argv[1:] is the CLI's "--" tail.
func testArgs(argc int, argv []string) int {
	if argc != len(argv) {
		return 1
	}
	if argc < 3 || argv[1] != "foo" || argv[2] != "bar" {
		return 1
	}
	return 0
}

func testInfiniteloop(_ int, _ []string) int {
	select {}
}

func testHello(_ int, _ []string) int {
	fmt.Println("hello")
	return 0
}

func testGoodbye(_ int, _ []string) int {
	fmt.Println("goodbye")
	return 0
}
