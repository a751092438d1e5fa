package harness

import (
	"fmt"
	"os"
	"strings"
)

// workerTestEnv is the environment variable ForkSRunner sets on a re-exec'd
// worker process to identify which "suite.name" entry it should run. Using
// an environment variable (rather than a CLI flag) keeps the test's own
// argv completely untouched, since the CLI's "--" tail must be forwarded
// to the test verbatim.
const workerTestEnv = "TESTFW_WORKER_TEST"

// RunWorkerIfRequested must be called at the very start of main(), before
// any CLI flag parsing. If the current process was re-exec'd by
// ForkSRunner to act as a worker, it looks up and invokes the requested
// entry against registrar, then terminates the process with the entry's
// return code - it never returns in that case. Ordinary CLI invocations
// (the environment variable unset) fall straight through.
func RunWorkerIfRequested(registrar *Registrar) {
	id, ok := os.LookupEnv(workerTestEnv)
	if !ok {
		return
	}

	suite, name, ok := splitTestID(id)
	if !ok {
		fmt.Fprintf(os.Stderr, "testfw: malformed worker test id %q\n", id)
		os.Exit(internalFaultCode)
	}

	fn, ok := registrar.Lookup(suite, name)
	if !ok {
		fmt.Fprintf(os.Stderr, "testfw: worker: %s.%s is not registered\n", suite, name)
		os.Exit(internalFaultCode)
	}

	argv := os.Args
	os.Exit(fn(len(argv), argv))
}

// internalFaultCode is returned by a worker process that could not even
// start the requested test - an engine-internal fault rather than a test
// failure. It is deliberately distinct from TimeoutCode so the two are
// never confused.
const internalFaultCode = 216

func splitTestID(id string) (suite, name string, ok bool) {
	idx := strings.IndexByte(id, '.')
	if idx < 0 {
		return "", "", false
	}
	return id[:idx], id[idx+1:], true
}
